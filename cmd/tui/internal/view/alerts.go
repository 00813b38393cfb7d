package view

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"centavo/internal/notify"
	"centavo/internal/report"
)

type alertItem struct {
	alert report.Alert
}

func (i alertItem) Title() string {
	marker := "●"
	if i.alert.IsRead {
		marker = " "
	}

	return fmt.Sprintf("%s %s", marker, i.alert.Title)
}

func (i alertItem) Description() string {
	return fmt.Sprintf("%s  %s", i.alert.CreatedAt.Format("Jan 2 15:04"), i.alert.Message)
}

func (i alertItem) FilterValue() string { return i.alert.Title + " " + i.alert.Message }

var alertTypeColors = map[report.AlertType]lipgloss.Color{
	report.AlertDanger:  lipgloss.Color("196"),
	report.AlertSuccess: lipgloss.Color("46"),
	report.AlertTip:     lipgloss.Color("226"),
	report.AlertInfo:    lipgloss.Color("39"),
}

type AlertsModel struct {
	CommonModel
	reportStore *report.Store
	trigger     *notify.Trigger

	list    list.Model
	filter  report.AlertType
	loading bool
	status  string
}

func NewAlertsModel(reportStore *report.Store, trigger *notify.Trigger) AlertsModel {
	l := list.New([]list.Item{}, alertItemDelegate{}, 0, 0)
	l.Title = "Alerts"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return AlertsModel{
		reportStore: reportStore,
		trigger:     trigger,
		list:        l,
		loading:     true,
	}
}

func (m AlertsModel) Title() string { return "Alerts" }

func (m AlertsModel) ShortHelp() string {
	return "Esc: back | Enter: mark read | a: mark all read | f: cycle type filter | r: refresh"
}

func (m AlertsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m AlertsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadAlertsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.refreshListItems()

		return m, nil

	case alertActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = msg.status
		m.refreshListItems()

		return m, nil

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.list.FilterState() != list.Filtering {
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "enter":
				if selected, ok := m.list.SelectedItem().(alertItem); ok && !selected.alert.IsRead {
					return m, m.markReadCmd(selected.alert)
				}
			case "a":
				return m, m.markAllReadCmd()
			case "f":
				m.filter = nextAlertType(m.filter)
				m.loading = true

				return m, m.loadCmd()
			case "r":
				m.loading = true
				m.status = ""

				return m, m.loadCmd()
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

// nextAlertType cycles all -> danger -> success -> tip -> info -> all.
func nextAlertType(current report.AlertType) report.AlertType {
	order := []report.AlertType{"", report.AlertDanger, report.AlertSuccess, report.AlertTip, report.AlertInfo}

	for i, t := range order {
		if t == current {
			return order[(i+1)%len(order)]
		}
	}

	return ""
}

func (m AlertsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading alerts...")
	}

	header := fmt.Sprintf("Unread: %d", m.reportStore.UnreadCount())
	if m.filter != "" {
		header += fmt.Sprintf("  |  filter: %s", m.filter)
	}
	if m.status != "" {
		header += "  |  " + m.status
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.NewStyle().Faint(true).Render(header) + "\n" + m.list.View(),
	)
}

func (m *AlertsModel) refreshListItems() {
	alerts := m.reportStore.Alerts()

	items := make([]list.Item, len(alerts))
	for i, a := range alerts {
		items[i] = alertItem{alert: a}
	}

	m.list.SetItems(items)
}

// Messages

type loadAlertsMsg struct {
	err error
}

func (m AlertsModel) loadCmd() tea.Cmd {
	store := m.reportStore
	filter := report.AlertFilter{Type: m.filter}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return loadAlertsMsg{err: store.FetchAlerts(ctx, filter)}
	}
}

type alertActionMsg struct {
	status string
	err    error
}

func (m AlertsModel) markReadCmd(alert report.Alert) tea.Cmd {
	store := m.reportStore
	trigger := m.trigger

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if _, err := store.MarkAlertAsRead(ctx, alert.ID); err != nil {
			return alertActionMsg{err: err}
		}

		trigger.AlertMarkedRead(ctx)

		return alertActionMsg{status: "Marked read."}
	}
}

func (m AlertsModel) markAllReadCmd() tea.Cmd {
	store := m.reportStore
	trigger := m.trigger
	count := store.UnreadCount()

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if err := store.MarkAllAlertsAsRead(ctx); err != nil {
			return alertActionMsg{err: err}
		}

		trigger.AllAlertsMarkedRead(ctx, count)

		return alertActionMsg{status: fmt.Sprintf("Marked %d alerts read.", count)}
	}
}

type alertItemDelegate struct{}

func (d alertItemDelegate) Height() int                             { return 2 }
func (d alertItemDelegate) Spacing() int                            { return 0 }
func (d alertItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d alertItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(alertItem)
	if !ok {
		return
	}

	title := i.Title()

	if color, ok := alertTypeColors[i.alert.AlertType]; ok {
		title = lipgloss.NewStyle().Foreground(color).Render(title)
	}

	if index == m.Index() {
		title = lipgloss.NewStyle().Bold(true).Render("> ") + title
	} else {
		title = "  " + title
	}

	fmt.Fprintf(w, "  %s\n    %s\n", title, lipgloss.NewStyle().Faint(true).Render(i.Description()))
}
