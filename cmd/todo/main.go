// Command todo is a terminal client for the todo API.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskloop/todo-system/cmd/todo/ui"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "Base URL of the todo API")
	fresh := flag.Bool("fresh", false, "Ignore any saved session and show the login screen")
	flag.Parse()

	client := ui.NewClient(*apiURL)

	store, err := ui.NewSessionStore()
	if err != nil {
		// No config dir available; run without session persistence.
		store = nil
	}

	var saved *ui.SavedSession
	if store != nil && !*fresh {
		saved, _ = store.Load()
	}

	p := tea.NewProgram(ui.NewRootModel(client, store, saved), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "todo: %v\n", err)
		os.Exit(1)
	}
}
