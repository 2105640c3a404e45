package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formDoneMsg signals that the form saved its todo and the list should
// reload.
type formDoneMsg struct {
	Status string
}

// formCancelledMsg signals that the user backed out without saving.
type formCancelledMsg struct{}

const (
	formTitle = iota
	formDescription
)

// FormModel is the create/edit form. When Editing is set the form updates an
// existing todo, otherwise it creates a new one.
type FormModel struct {
	Client   *Client
	Editing  bool
	TodoID   uint
	Inputs   []textinput.Model
	FocusIdx int
	Busy     bool
	Err      error
}

func NewFormModel(client *Client) FormModel {
	return newFormModel(client, nil)
}

func NewEditFormModel(client *Client, todo Todo) FormModel {
	return newFormModel(client, &todo)
}

func newFormModel(client *Client, todo *Todo) FormModel {
	inputs := make([]textinput.Model, 2)

	inputs[formTitle] = textinput.New()
	inputs[formTitle].Placeholder = "What needs doing?"
	inputs[formTitle].Prompt = "Title:       "
	inputs[formTitle].CharLimit = 200
	inputs[formTitle].Focus()

	inputs[formDescription] = textinput.New()
	inputs[formDescription].Placeholder = "optional details"
	inputs[formDescription].Prompt = "Description: "
	inputs[formDescription].CharLimit = 1000

	m := FormModel{Client: client, Inputs: inputs}
	if todo != nil {
		m.Editing = true
		m.TodoID = todo.ID
		m.Inputs[formTitle].SetValue(todo.Title)
		m.Inputs[formDescription].SetValue(todo.Description)
	}
	return m
}

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *FormModel) nextInput() {
	m.Inputs[m.FocusIdx].Blur()
	m.FocusIdx = (m.FocusIdx + 1) % len(m.Inputs)
	m.Inputs[m.FocusIdx].Focus()
}

func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Busy {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyEsc:
			return m, func() tea.Msg { return formCancelledMsg{} }
		case tea.KeyEnter:
			if m.FocusIdx == len(m.Inputs)-1 {
				m.Busy = true
				m.Err = nil
				return m, m.submitCmd()
			}
			m.nextInput()
			return m, nil
		case tea.KeyTab, tea.KeyDown:
			m.nextInput()
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			m.nextInput()
			return m, nil
		}

	case errMsg:
		m.Busy = false
		m.Err = msg
		return m, nil
	}

	cmds := make([]tea.Cmd, len(m.Inputs))
	for i := range m.Inputs {
		m.Inputs[i], cmds[i] = m.Inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m FormModel) submitCmd() tea.Cmd {
	client := m.Client
	editing, id := m.Editing, m.TodoID
	title := strings.TrimSpace(m.Inputs[formTitle].Value())
	description := m.Inputs[formDescription].Value()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if editing {
			if _, err := client.UpdateTodo(ctx, id, &title, &description, nil); err != nil {
				return errMsg(err)
			}
			return formDoneMsg{Status: "Todo updated"}
		}
		if _, err := client.CreateTodo(ctx, title, description); err != nil {
			return errMsg(err)
		}
		return formDoneMsg{Status: "Todo created"}
	}
}

func (m FormModel) View() string {
	var b strings.Builder

	title := "New Todo"
	if m.Editing {
		title = "Edit Todo"
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	for i := range m.Inputs {
		b.WriteString(m.Inputs[i].View())
		b.WriteRune('\n')
	}

	b.WriteString("\n")
	if m.Busy {
		b.WriteString(statusMessageStyle("Saving..."))
	} else {
		b.WriteString(blurredStyle.Render("Tab to switch fields, Enter to save, Esc to cancel"))
	}

	if m.Err != nil {
		b.WriteString("\n\n")
		b.WriteString(errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
