package view

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"centavo/internal/budget"
	"centavo/internal/report"
	"centavo/internal/transaction"
)

// DashboardModel is a read-only landing screen: totals, unread count and the
// most recent activity, all rendered from the store caches.
type DashboardModel struct {
	CommonModel
	txStore     *transaction.Store
	budgetStore *budget.Store
	reportStore *report.Store

	loading bool
	status  string
}

func NewDashboardModel(txStore *transaction.Store, budgetStore *budget.Store, reportStore *report.Store) DashboardModel {
	return DashboardModel{
		txStore:     txStore,
		budgetStore: budgetStore,
		reportStore: reportStore,
		loading:     true,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	return "Esc: back | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			m.status = ""

			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	var b strings.Builder

	if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(m.status))
		b.WriteString("\n\n")
	}

	b.WriteString(reportHeaderStyle.Render("Overview"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Income:   %s\n", reportIncomeStyle.Render(FormatAmount(m.txStore.TotalIncome()))))
	b.WriteString(fmt.Sprintf("  Expenses: %s\n", reportExpenseStyle.Render(FormatAmount(m.txStore.TotalExpenses()))))
	b.WriteString(fmt.Sprintf("  Balance:  %s\n", FormatAmount(m.txStore.NetBalance())))

	if n := m.reportStore.UnreadCount(); n > 0 {
		b.WriteString(fmt.Sprintf("  Unread alerts: %d\n", n))
	}

	b.WriteString("\n")
	b.WriteString(reportHeaderStyle.Render("Recent Activity"))
	b.WriteString("\n")

	recent := m.recentTransactions(8)
	if len(recent) == 0 {
		b.WriteString("  no transactions yet\n")
	}

	for _, entry := range recent {
		b.WriteString(entry)
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

// recentTransactions interleaves incomes and expenses by date, newest first.
func (m DashboardModel) recentTransactions(limit int) []string {
	type row struct {
		tx     transaction.Transaction
		income bool
	}

	var rows []row
	for _, tx := range m.txStore.Incomes() {
		rows = append(rows, row{tx: tx, income: true})
	}
	for _, tx := range m.txStore.Expenses() {
		rows = append(rows, row{tx: tx})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[j].tx.Date.Before(rows[i].tx.Date)
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]string, 0, len(rows))
	for _, r := range rows {
		amount := reportExpenseStyle.Render("-" + FormatAmount(r.tx.Amount))
		if r.income {
			amount = reportIncomeStyle.Render("+" + FormatAmount(r.tx.Amount))
		}

		category := ""
		if c := m.budgetStore.CategoryByID(r.tx.Category); c != nil {
			category = "  [" + c.Name + "]"
		}

		out = append(out, fmt.Sprintf("  %s  %s  %s%s", FormatDate(r.tx.Date), amount, r.tx.Description, category))
	}

	return out
}

type dashboardLoadedMsg struct {
	err error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	txStore := m.txStore
	budgetStore := m.budgetStore
	reportStore := m.reportStore

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if err := budgetStore.FetchCategories(ctx, budget.ListFilter{}); err != nil {
			return dashboardLoadedMsg{err: err}
		}

		if err := txStore.FetchIncomes(ctx, transaction.ListFilter{}); err != nil {
			return dashboardLoadedMsg{err: err}
		}

		if err := txStore.FetchExpenses(ctx, transaction.ListFilter{}); err != nil {
			return dashboardLoadedMsg{err: err}
		}

		return dashboardLoadedMsg{err: reportStore.FetchAlerts(ctx, report.AlertFilter{})}
	}
}
