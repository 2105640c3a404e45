package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

type state int

const (
	stateAuth state = iota
	stateList
	stateForm
)

// RootModel owns the current view and the shared client and session store.
type RootModel struct {
	Client   *Client
	Store    *SessionStore
	State    state
	Auth     AuthModel
	List     ListModel
	Form     FormModel
	height   int
	Quitting bool
}

// NewRootModel starts on the login view, or directly on the list when a
// saved session is installed on the client.
func NewRootModel(client *Client, store *SessionStore, saved *SavedSession) RootModel {
	m := RootModel{
		Client: client,
		Store:  store,
		State:  stateAuth,
		Auth:   NewAuthModel(client),
		height: 24,
	}
	if saved != nil {
		client.SetToken(saved.Token)
		m.State = stateList
		m.List = NewListModel(client, saved.Username, m.height)
	}
	return m
}

func (m RootModel) Init() tea.Cmd {
	if m.State == stateList {
		return m.List.Init()
	}
	return m.Auth.Init()
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		if msg.Height > 14 {
			m.List.Table.SetHeight(msg.Height - 10)
		}

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Quitting = true
			return m, tea.Quit
		}

	case authSuccessMsg:
		m.Client.SetToken(msg.Token)
		if m.Store != nil {
			_ = m.Store.Save(SavedSession{Token: msg.Token, Username: msg.User.Username})
		}
		m.State = stateList
		m.List = NewListModel(m.Client, msg.User.Username, m.height)
		return m, m.List.Init()

	case logoutMsg:
		return m.logout(), nil

	case errMsg:
		// A rejected token anywhere past login means the session is dead.
		var apiErr *APIError
		if m.State != stateAuth && errors.As(error(msg), &apiErr) && apiErr.Unauthorized() {
			next := m.logout()
			next.Auth.Err = error(msg)
			return next, nil
		}

	case newTodoMsg:
		m.State = stateForm
		m.Form = NewFormModel(m.Client)
		return m, m.Form.Init()

	case editTodoMsg:
		m.State = stateForm
		m.Form = NewEditFormModel(m.Client, msg.Todo)
		return m, m.Form.Init()

	case formCancelledMsg:
		m.State = stateList
		return m, nil

	case formDoneMsg:
		m.State = stateList
		m.List.Status = msg.Status
		return m, m.List.fetchCmd()
	}

	var cmd tea.Cmd
	switch m.State {
	case stateAuth:
		m.Auth, cmd = m.Auth.Update(msg)
	case stateList:
		m.List, cmd = m.List.Update(msg)
	case stateForm:
		m.Form, cmd = m.Form.Update(msg)
	}
	return m, cmd
}

// logout clears the stored session and returns to the login view.
func (m RootModel) logout() RootModel {
	m.Client.SetToken("")
	if m.Store != nil {
		_ = m.Store.Clear()
	}
	m.State = stateAuth
	m.Auth = NewAuthModel(m.Client)
	return m
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Bye!\n"
	}
	switch m.State {
	case stateAuth:
		return m.Auth.View()
	case stateList:
		return m.List.View()
	case stateForm:
		return m.Form.View()
	}
	return ""
}
