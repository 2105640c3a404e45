package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type errMsg error

// authSuccessMsg signals a completed login or registration.
type authSuccessMsg struct {
	User  User
	Token string
}

type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

const (
	inputUsername = iota
	inputEmail
	inputPassword
)

// AuthModel is the combined login/register form. Ctrl+R flips between the
// two modes; the username field only participates when registering.
type AuthModel struct {
	Client   *Client
	Mode     authMode
	Inputs   []textinput.Model
	FocusIdx int
	Busy     bool
	Err      error
}

func NewAuthModel(client *Client) AuthModel {
	inputs := make([]textinput.Model, 3)

	inputs[inputUsername] = textinput.New()
	inputs[inputUsername].Placeholder = "username"
	inputs[inputUsername].Prompt = "Username: "
	inputs[inputUsername].CharLimit = 50

	inputs[inputEmail] = textinput.New()
	inputs[inputEmail].Placeholder = "you@example.com"
	inputs[inputEmail].Prompt = "Email:    "

	inputs[inputPassword] = textinput.New()
	inputs[inputPassword].Placeholder = "password"
	inputs[inputPassword].Prompt = "Password: "
	inputs[inputPassword].EchoMode = textinput.EchoPassword

	m := AuthModel{
		Client: client,
		Mode:   modeLogin,
		Inputs: inputs,
	}
	m.setFocus(m.firstInput())
	return m
}

func (m AuthModel) Init() tea.Cmd {
	return textinput.Blink
}

// firstInput is the topmost visible field for the current mode.
func (m AuthModel) firstInput() int {
	if m.Mode == modeRegister {
		return inputUsername
	}
	return inputEmail
}

func (m *AuthModel) setFocus(idx int) {
	for i := range m.Inputs {
		m.Inputs[i].Blur()
	}
	m.FocusIdx = idx
	m.Inputs[idx].Focus()
}

func (m *AuthModel) nextInput() {
	idx := m.FocusIdx + 1
	if idx > inputPassword {
		idx = m.firstInput()
	}
	m.setFocus(idx)
}

func (m *AuthModel) prevInput() {
	idx := m.FocusIdx - 1
	if idx < m.firstInput() {
		idx = inputPassword
	}
	m.setFocus(idx)
}

func (m AuthModel) Update(msg tea.Msg) (AuthModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Busy {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyCtrlR:
			if m.Mode == modeLogin {
				m.Mode = modeRegister
			} else {
				m.Mode = modeLogin
			}
			m.Err = nil
			m.setFocus(m.firstInput())
			return m, nil
		case tea.KeyEnter:
			if m.FocusIdx == inputPassword {
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
			m.prevInput()
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

func (m AuthModel) submitCmd() tea.Cmd {
	mode := m.Mode
	username := strings.TrimSpace(m.Inputs[inputUsername].Value())
	email := strings.TrimSpace(m.Inputs[inputEmail].Value())
	password := m.Inputs[inputPassword].Value()
	client := m.Client

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var (
			user  *User
			token string
			err   error
		)
		if mode == modeRegister {
			user, token, err = client.Register(ctx, username, email, password)
		} else {
			user, token, err = client.Login(ctx, email, password)
		}
		if err != nil {
			return errMsg(err)
		}
		return authSuccessMsg{User: *user, Token: token}
	}
}

func (m AuthModel) View() string {
	var b strings.Builder

	title := "Todo - Login"
	action := "register"
	if m.Mode == modeRegister {
		title = "Todo - Register"
		action = "login"
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	for i := m.firstInput(); i <= inputPassword; i++ {
		b.WriteString(m.Inputs[i].View())
		b.WriteRune('\n')
	}

	b.WriteString("\n")
	if m.Busy {
		b.WriteString(statusMessageStyle("Signing in..."))
	} else {
		b.WriteString(blurredStyle.Render("Tab to switch fields, Enter to submit, Ctrl+R to " + action + ", Ctrl+C to quit"))
	}

	if m.Err != nil {
		b.WriteString("\n\n")
		b.WriteString(errorMessageStyle(m.Err.Error()))
	}

	return b.String()
}
