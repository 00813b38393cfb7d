package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"centavo/cmd/tui/internal/view"
	"centavo/internal/api"
	"centavo/internal/auth"
	"centavo/internal/auth/storage"
	"centavo/internal/budget"
	"centavo/internal/config"
	"centavo/internal/importer"
	"centavo/internal/notify"
	"centavo/internal/report"
	"centavo/internal/transaction"
)

type model struct {
	authStore   *auth.Store
	txStore     *transaction.Store
	budgetStore *budget.Store
	reportStore *report.Store
	trigger     *notify.Trigger
	center      *notify.Center

	currentView View

	loginView        view.LoginModel
	dashboardView    view.DashboardModel
	transactionsView view.TransactionsModel
	budgetsView      view.BudgetsModel
	categoriesView   view.CategoriesModel
	goalsView        view.GoalsModel
	reportsView      view.ReportsModel
	alertsView       view.AlertsModel
	importView       view.ImportModel
	profileView      view.ProfileModel
}

type View int

const (
	ViewLogin View = iota
	ViewMenu
	ViewDashboard
	ViewTransactions
	ViewBudgets
	ViewCategories
	ViewGoals
	ViewReports
	ViewAlerts
	ViewImport
	ViewProfile
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sessionPath := cfg.Session.Path
	if sessionPath == "" {
		sessionPath, err = storage.DefaultPath()
		if err != nil {
			slog.Error("failed to resolve session path", "error", err)
			os.Exit(1)
		}
	}

	files := storage.New(sessionPath)
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, files)

	authStore := auth.NewStore(client, files)

	txStore := transaction.NewStore(client)
	budgetStore := budget.NewStore(client)
	reportStore := report.NewStore(client)

	trigger := notify.NewTrigger(reportStore)
	center := notify.NewCenter(reportStore, cfg.Notifications.PollInterval, cfg.Notifications.DismissAfter)

	impSvc := importer.NewService()

	authStore.Initialize()

	currentView := ViewLogin
	if authStore.Authenticated() {
		currentView = ViewMenu
		center.Start(context.Background())
	}

	return model{
		authStore:   authStore,
		txStore:     txStore,
		budgetStore: budgetStore,
		reportStore: reportStore,
		trigger:     trigger,
		center:      center,

		currentView: currentView,

		loginView:        view.NewLoginModel(authStore),
		dashboardView:    view.NewDashboardModel(txStore, budgetStore, reportStore),
		transactionsView: view.NewTransactionsModel(txStore, budgetStore, reportStore, trigger),
		budgetsView:      view.NewBudgetsModel(budgetStore),
		categoriesView:   view.NewCategoriesModel(budgetStore),
		goalsView:        view.NewGoalsModel(budgetStore, trigger),
		reportsView:      view.NewReportsModel(reportStore),
		alertsView:       view.NewAlertsModel(reportStore, trigger),
		importView:       view.NewImportModel(txStore, budgetStore, impSvc, trigger),
		profileView:      view.NewProfileModel(authStore),
	}
}

func (m model) Init() tea.Cmd {
	if m.currentView == ViewLogin {
		return m.loginView.Init()
	}

	return m.waitForNotifications()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.center.Stop()
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				m.center.Stop()
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.txStore, m.budgetStore, m.reportStore)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.txStore, m.budgetStore, m.reportStore, m.trigger)

				return m, m.transactionsView.Init()
			case "3":
				m.currentView = ViewBudgets
				m.budgetsView = view.NewBudgetsModel(m.budgetStore)

				return m, m.budgetsView.Init()
			case "4":
				m.currentView = ViewCategories
				m.categoriesView = view.NewCategoriesModel(m.budgetStore)

				return m, m.categoriesView.Init()
			case "5":
				m.currentView = ViewGoals
				m.goalsView = view.NewGoalsModel(m.budgetStore, m.trigger)

				return m, m.goalsView.Init()
			case "6":
				m.currentView = ViewReports
				m.reportsView = view.NewReportsModel(m.reportStore)

				return m, m.reportsView.Init()
			case "7":
				m.currentView = ViewAlerts
				m.alertsView = view.NewAlertsModel(m.reportStore, m.trigger)

				return m, m.alertsView.Init()
			case "8":
				m.currentView = ViewImport

				return m, m.importView.Init()
			case "9":
				m.currentView = ViewProfile
				m.profileView = view.NewProfileModel(m.authStore)

				return m, m.profileView.Init()
			}
		}

	case view.AuthenticatedMsg:
		m.currentView = ViewMenu
		m.center.Start(context.Background())

		return m, m.waitForNotifications()

	case view.LoggedOutMsg:
		m.currentView = ViewLogin
		m.center.Stop()
		m.loginView = view.NewLoginModel(m.authStore)

		return m, m.loginView.Init()

	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil

	case notificationsChangedMsg:
		// Re-render and keep listening.
		return m, m.waitForNotifications()
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewBudgets:
		var newModel tea.Model
		newModel, cmd = m.budgetsView.Update(msg)
		m.budgetsView = newModel.(view.BudgetsModel)
	case ViewCategories:
		var newModel tea.Model
		newModel, cmd = m.categoriesView.Update(msg)
		m.categoriesView = newModel.(view.CategoriesModel)
	case ViewGoals:
		var newModel tea.Model
		newModel, cmd = m.goalsView.Update(msg)
		m.goalsView = newModel.(view.GoalsModel)
	case ViewReports:
		var newModel tea.Model
		newModel, cmd = m.reportsView.Update(msg)
		m.reportsView = newModel.(view.ReportsModel)
	case ViewAlerts:
		var newModel tea.Model
		newModel, cmd = m.alertsView.Update(msg)
		m.alertsView = newModel.(view.AlertsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewProfile:
		var newModel tea.Model
		newModel, cmd = m.profileView.Update(msg)
		m.profileView = newModel.(view.ProfileModel)
	}

	return m, cmd
}

func (m model) View() string {
	var body string

	switch m.currentView {
	case ViewLogin:
		body = m.loginView.View()
	case ViewMenu:
		unread := ""
		if n := m.reportStore.UnreadCount(); n > 0 {
			unread = fmt.Sprintf("  (%d unread)", n)
		}

		body = lipgloss.NewStyle().Padding(2).Render(
			"Centavo\n\n" +
				"1. Dashboard\n" +
				"2. Transactions\n" +
				"3. Budgets\n" +
				"4. Categories\n" +
				"5. Goals\n" +
				"6. Reports\n" +
				"7. Alerts" + unread + "\n" +
				"8. Import Statement\n" +
				"9. Profile\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		body = m.dashboardView.View()
	case ViewTransactions:
		body = m.transactionsView.View()
	case ViewBudgets:
		body = m.budgetsView.View()
	case ViewCategories:
		body = m.categoriesView.View()
	case ViewGoals:
		body = m.goalsView.View()
	case ViewReports:
		body = m.reportsView.View()
	case ViewAlerts:
		body = m.alertsView.View()
	case ViewImport:
		body = m.importView.View()
	case ViewProfile:
		body = m.profileView.View()
	default:
		body = "Unknown View"
	}

	if toasts := m.toastView(); toasts != "" {
		return toasts + "\n" + body
	}

	return body
}

var toastStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("39")).
	Padding(0, 1)

func (m model) toastView() string {
	visible := m.center.Visible()
	if len(visible) == 0 {
		return ""
	}

	lines := make([]string, 0, len(visible))
	for _, a := range visible {
		lines = append(lines, fmt.Sprintf("%s %s", a.Title, a.Message))
	}

	return toastStyle.Render(strings.Join(lines, "\n"))
}

type notificationsChangedMsg struct{}

func (m model) waitForNotifications() tea.Cmd {
	changed := m.center.Changed()

	return func() tea.Msg {
		<-changed
		return notificationsChangedMsg{}
	}
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
