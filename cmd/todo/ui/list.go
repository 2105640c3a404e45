package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const pageSize = 10

// todosLoadedMsg delivers a fetched page to the list view.
type todosLoadedMsg struct {
	Page *TodoPage
}

// todoMutatedMsg signals a completed toggle or delete; the list refreshes.
type todoMutatedMsg struct {
	Status string
}

// editTodoMsg asks the root model to open the form for an existing todo.
type editTodoMsg struct {
	Todo Todo
}

// newTodoMsg asks the root model to open an empty form.
type newTodoMsg struct{}

// logoutMsg asks the root model to drop the session and show the login view.
type logoutMsg struct{}

// ListModel shows one page of the user's todos in a table.
type ListModel struct {
	Client   *Client
	Username string
	Table    table.Model
	Todos    []Todo
	Page     int
	Filter   Filter
	Meta     Pagination
	Status   string
	Err      error
}

func NewListModel(client *Client, username string, height int) ListModel {
	columns := []table.Column{
		{Title: "", Width: 3},
		{Title: "ID", Width: 6},
		{Title: "Title", Width: 40},
		{Title: "Updated", Width: 16},
	}

	if height < 14 {
		height = 14
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height-10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ListModel{
		Client:   client,
		Username: username,
		Table:    t,
		Page:     1,
		Filter:   FilterAll,
	}
}

func (m ListModel) Init() tea.Cmd {
	return m.fetchCmd()
}

func (m ListModel) fetchCmd() tea.Cmd {
	client, page, filter := m.Client, m.Page, m.Filter
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		result, err := client.ListTodos(ctx, page, pageSize, filter)
		if err != nil {
			return errMsg(err)
		}
		return todosLoadedMsg{Page: result}
	}
}

func (m ListModel) selectedTodo() (Todo, bool) {
	row := m.Table.SelectedRow()
	if len(row) == 0 {
		return Todo{}, false
	}
	id, err := strconv.ParseUint(row[1], 10, 32)
	if err != nil {
		return Todo{}, false
	}
	for _, t := range m.Todos {
		if t.ID == uint(id) {
			return t, true
		}
	}
	return Todo{}, false
}

func (m ListModel) Update(msg tea.Msg) (ListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.fetchCmd()
		case "n":
			if m.Page < m.Meta.TotalPages {
				m.Page++
				return m, m.fetchCmd()
			}
		case "p":
			if m.Page > 1 {
				m.Page--
				return m, m.fetchCmd()
			}
		case "f":
			m.Filter = (m.Filter + 1) % 3
			m.Page = 1
			return m, m.fetchCmd()
		case "c":
			return m, func() tea.Msg { return newTodoMsg{} }
		case "e", "enter":
			if todo, ok := m.selectedTodo(); ok {
				return m, func() tea.Msg { return editTodoMsg{Todo: todo} }
			}
		case " ":
			if todo, ok := m.selectedTodo(); ok {
				return m, m.toggleCmd(todo)
			}
		case "d":
			if todo, ok := m.selectedTodo(); ok {
				return m, m.deleteCmd(todo.ID)
			}
		case "L":
			return m, func() tea.Msg { return logoutMsg{} }
		case "q":
			return m, tea.Quit
		}

	case todosLoadedMsg:
		m.Err = nil
		m.Todos = msg.Page.Todos
		m.Meta = msg.Page.Pagination
		m.Page = msg.Page.Pagination.CurrentPage

		rows := make([]table.Row, 0, len(m.Todos))
		for _, t := range m.Todos {
			mark := pendingMark
			if t.IsDone {
				mark = doneMark
			}
			rows = append(rows, table.Row{
				mark,
				strconv.FormatUint(uint64(t.ID), 10),
				t.Title,
				t.UpdatedAt.Local().Format("2006-01-02 15:04"),
			})
		}
		m.Table.SetRows(rows)
		return m, nil

	case todoMutatedMsg:
		m.Status = msg.Status
		return m, m.fetchCmd()

	case errMsg:
		m.Err = msg
		return m, nil
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m ListModel) toggleCmd(todo Todo) tea.Cmd {
	client := m.Client
	done := !todo.IsDone
	id := todo.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if _, err := client.UpdateTodo(ctx, id, nil, nil, &done); err != nil {
			return errMsg(err)
		}
		status := "Marked as pending"
		if done {
			status = "Marked as done"
		}
		return todoMutatedMsg{Status: status}
	}
}

func (m ListModel) deleteCmd(id uint) tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		deleted, err := client.DeleteTodo(ctx, id)
		if err != nil {
			return errMsg(err)
		}
		return todoMutatedMsg{Status: fmt.Sprintf("Deleted %q", deleted.Title)}
	}
}

func (m ListModel) View() string {
	var b strings.Builder

	header := fmt.Sprintf("Todos - %s [%s]", m.Username, m.Filter)
	b.WriteString(titleStyle.Render(header) + "\n\n")
	b.WriteString(m.Table.View())
	b.WriteString("\n\n")

	if m.Meta.TotalPages > 0 {
		b.WriteString(blurredStyle.Render(fmt.Sprintf("Page %d/%d (%d items)",
			m.Meta.CurrentPage, m.Meta.TotalPages, m.Meta.TotalItems)))
	} else {
		b.WriteString(blurredStyle.Render("No todos yet"))
	}
	b.WriteString("\n")
	b.WriteString(blurredStyle.Render("c new  e edit  space toggle  d delete  f filter  n/p page  r refresh  L logout  q quit"))

	if m.Status != "" {
		b.WriteString("\n" + statusMessageStyle(m.Status))
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
