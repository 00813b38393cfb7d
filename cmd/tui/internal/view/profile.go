package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"centavo/internal/auth"
)

type profileState int

const (
	profileStateShow profileState = iota
	profileStateEditing
	profileStateBusy
)

type ProfileModel struct {
	CommonModel
	authStore *auth.Store

	state  profileState
	form   *huh.Form
	status string

	formEmail     string
	formFirstName string
	formLastName  string
}

func NewProfileModel(authStore *auth.Store) ProfileModel {
	return ProfileModel{authStore: authStore}
}

func (m ProfileModel) Title() string { return "Profile" }

func (m ProfileModel) ShortHelp() string {
	if m.state == profileStateEditing {
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back | e: edit | l: log out"
}

func (m ProfileModel) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profileResultMsg:
		m.state = profileStateShow
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = msg.status

		return m, nil

	case loggedOutMsg:
		return m, func() tea.Msg { return LoggedOutMsg{} }
	}

	if m.state == profileStateEditing {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "e":
			return m.startEditing()
		case "l":
			m.state = profileStateBusy
			m.status = "Logging out..."

			return m, m.logoutCmd()
		}
	}

	return m, nil
}

func (m ProfileModel) startEditing() (tea.Model, tea.Cmd) {
	user := m.authStore.User()
	if user == nil {
		m.status = "No profile loaded."
		return m, nil
	}

	m.formEmail = user.Email
	m.formFirstName = user.FirstName
	m.formLastName = user.LastName

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.formEmail).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("invalid email")
					}
					return nil
				}),

			huh.NewInput().
				Key("first_name").
				Title("First Name").
				Value(&m.formFirstName),

			huh.NewInput().
				Key("last_name").
				Title("Last Name").
				Value(&m.formLastName),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = profileStateEditing

	return m, m.form.Init()
}

func (m ProfileModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = profileStateShow
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = profileStateBusy

	return m, m.saveCmd()
}

func (m ProfileModel) View() string {
	padded := lipgloss.NewStyle().Padding(1)

	if m.state == profileStateEditing && m.form != nil {
		return padded.Render(m.form.View())
	}

	var b strings.Builder

	user := m.authStore.User()
	if user == nil {
		b.WriteString("No profile loaded.\n")
	} else {
		label := lipgloss.NewStyle().Faint(true)
		b.WriteString(fmt.Sprintf("%s %s\n", label.Render("Username:"), user.Username))
		b.WriteString(fmt.Sprintf("%s %s\n", label.Render("Email:   "), user.Email))

		name := strings.TrimSpace(user.FirstName + " " + user.LastName)
		if name != "" {
			b.WriteString(fmt.Sprintf("%s %s\n", label.Render("Name:    "), name))
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(m.status))
	}

	return padded.Render(b.String())
}

// Messages

type profileResultMsg struct {
	status string
	err    error
}

type loggedOutMsg struct{}

func (m ProfileModel) refreshCmd() tea.Cmd {
	store := m.authStore

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if _, err := store.Profile(ctx); err != nil {
			return profileResultMsg{err: err}
		}

		return profileResultMsg{}
	}
}

func (m ProfileModel) saveCmd() tea.Cmd {
	store := m.authStore
	params := auth.ProfileParams{
		Email:     m.formEmail,
		FirstName: m.formFirstName,
		LastName:  m.formLastName,
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if _, err := store.UpdateProfile(ctx, params); err != nil {
			return profileResultMsg{err: err}
		}

		return profileResultMsg{status: "Profile saved."}
	}
}

func (m ProfileModel) logoutCmd() tea.Cmd {
	store := m.authStore

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		store.Logout(ctx)

		return loggedOutMsg{}
	}
}
