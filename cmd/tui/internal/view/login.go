package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"centavo/internal/auth"
)

type loginState int

const (
	loginStateChoice loginState = iota
	loginStateLogin
	loginStateRegister
	loginStateBusy
)

// AuthenticatedMsg is emitted once a session has been established.
type AuthenticatedMsg struct{}

type LoginModel struct {
	CommonModel
	authStore *auth.Store

	state  loginState
	cursor int
	form   *huh.Form
	status string

	// Form field bindings
	formUsername  string
	formEmail     string
	formPassword  string
	formPassword2 string
	formFirstName string
	formLastName  string
}

func NewLoginModel(authStore *auth.Store) LoginModel {
	return LoginModel{authStore: authStore}
}

func (m LoginModel) Title() string { return "Sign In" }

func (m LoginModel) ShortHelp() string {
	if m.state == loginStateChoice {
		return "Enter: select | q: quit"
	}

	return "Esc: back | Enter/Tab: navigate form"
}

func (m LoginModel) Init() tea.Cmd {
	return nil
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case loginStateChoice:
			return m.updateChoice(msg)
		case loginStateLogin, loginStateRegister:
			if msg.Type == tea.KeyEsc {
				m.state = loginStateChoice
				m.form = nil
				m.status = ""

				return m, nil
			}
		}

	case authResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.state = loginStateChoice
			m.form = nil

			return m, nil
		}

		return m, func() tea.Msg { return AuthenticatedMsg{} }
	}

	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	submitting := m.state

	m.state = loginStateBusy
	m.status = "Signing in..."

	if submitting == loginStateRegister {
		m.status = "Creating account..."
		return m, m.registerCmd()
	}

	return m, m.loginCmd()
}

func (m LoginModel) updateChoice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < 1 {
			m.cursor++
		}
	case "enter":
		if m.cursor == 0 {
			return m.startLogin()
		}

		return m.startRegister()
	}

	return m, nil
}

func (m LoginModel) startLogin() (tea.Model, tea.Cmd) {
	m.formUsername = ""
	m.formPassword = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("Username").
				Value(&m.formUsername).
				Validate(notBlank("username")),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.formPassword).
				Validate(notBlank("password")),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = loginStateLogin
	m.status = ""

	return m, m.form.Init()
}

func (m LoginModel) startRegister() (tea.Model, tea.Cmd) {
	m.formUsername = ""
	m.formEmail = ""
	m.formPassword = ""
	m.formPassword2 = ""
	m.formFirstName = ""
	m.formLastName = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("Username").
				Value(&m.formUsername).
				Validate(notBlank("username")),

			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.formEmail).
				Validate(notBlank("email")),

			huh.NewInput().
				Key("first_name").
				Title("First Name (optional)").
				Value(&m.formFirstName),

			huh.NewInput().
				Key("last_name").
				Title("Last Name (optional)").
				Value(&m.formLastName),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.formPassword).
				Validate(notBlank("password")),

			huh.NewInput().
				Key("password_confirm").
				Title("Confirm Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.formPassword2).
				Validate(func(s string) error {
					if s != m.formPassword {
						return fmt.Errorf("passwords do not match")
					}
					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = loginStateRegister
	m.status = ""

	return m, m.form.Init()
}

func (m LoginModel) View() string {
	switch m.state {
	case loginStateChoice:
		options := []string{"Login", "Register"}
		s := "Welcome to Centavo\n\n"

		for i, opt := range options {
			cursor := " "
			if i == m.cursor {
				cursor = ">"
			}

			s += fmt.Sprintf("%s %s\n", cursor, opt)
		}

		if m.status != "" {
			s += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status)
		}

		s += "\n(Enter to select, q to quit)"

		return lipgloss.NewStyle().Padding(2).Render(s)

	case loginStateLogin, loginStateRegister:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case loginStateBusy:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	}

	return ""
}

// Messages

type authResultMsg struct {
	err error
}

func (m LoginModel) loginCmd() tea.Cmd {
	store := m.authStore
	creds := auth.Credentials{
		Username: m.formUsername,
		Password: m.formPassword,
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		_, err := store.Login(ctx, creds)

		return authResultMsg{err: err}
	}
}

func (m LoginModel) registerCmd() tea.Cmd {
	store := m.authStore
	params := auth.RegisterParams{
		Username:        m.formUsername,
		Email:           m.formEmail,
		FirstName:       m.formFirstName,
		LastName:        m.formLastName,
		Password:        m.formPassword,
		PasswordConfirm: m.formPassword2,
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		_, err := store.Register(ctx, params)

		return authResultMsg{err: err}
	}
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}

		return nil
	}
}
