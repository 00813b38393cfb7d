package view

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"centavo/internal/chart"
	"centavo/internal/report"
)

type reportsState int

const (
	reportsStateOverview reportsState = iota
	reportsStateMonthPicker
	reportsStateMonthly
)

type ReportsModel struct {
	CommonModel
	reportStore *report.Store

	state   reportsState
	form    *huh.Form
	monthly *report.MonthlyReport

	loading bool
	status  string

	formYear  string
	formMonth string
}

func NewReportsModel(reportStore *report.Store) ReportsModel {
	return ReportsModel{reportStore: reportStore, loading: true}
}

func (m ReportsModel) Title() string { return "Reports" }

func (m ReportsModel) ShortHelp() string {
	switch m.state {
	case reportsStateMonthPicker:
		return "Esc: cancel | Enter: fetch"
	case reportsStateMonthly:
		return "Esc: back to overview"
	}

	return "Esc: back | m: monthly report | s: save charts | r: refresh"
}

func (m ReportsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ReportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadReportsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		return m, nil

	case monthlyReportMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.state = reportsStateOverview

			return m, nil
		}

		m.monthly = msg.monthly
		m.state = reportsStateMonthly

		return m, nil

	case chartsSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Charts written to %s", msg.dir)
		}

		return m, nil
	}

	if m.state == reportsStateMonthPicker {
		return m.updateMonthPicker(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			if m.state == reportsStateMonthly {
				m.state = reportsStateOverview
				m.monthly = nil

				return m, nil
			}

			return m, Back
		case "m":
			return m.startMonthPicker()
		case "s":
			return m, m.saveChartsCmd()
		case "r":
			m.loading = true
			m.status = ""

			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m ReportsModel) startMonthPicker() (tea.Model, tea.Cmd) {
	now := time.Now()
	m.formYear = strconv.Itoa(now.Year())
	m.formMonth = strconv.Itoa(int(now.Month()))

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("year").
				Title("Year").
				Value(&m.formYear).
				Validate(func(s string) error {
					year, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || year < 1970 || year > 9999 {
						return fmt.Errorf("invalid year")
					}
					return nil
				}),

			huh.NewInput().
				Key("month").
				Title("Month (1-12)").
				Value(&m.formMonth).
				Validate(func(s string) error {
					month, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || month < 1 || month > 12 {
						return fmt.Errorf("invalid month")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = reportsStateMonthPicker

	return m, m.form.Init()
}

func (m ReportsModel) updateMonthPicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = reportsStateOverview
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

	year, _ := strconv.Atoi(strings.TrimSpace(m.formYear))
	month, _ := strconv.Atoi(strings.TrimSpace(m.formMonth))

	m.loading = true

	return m, m.monthlyCmd(year, time.Month(month))
}

func (m ReportsModel) View() string {
	if m.state == reportsStateMonthPicker && m.form != nil {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading reports...")
	}

	var b strings.Builder

	if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(m.status))
		b.WriteString("\n\n")
	}

	if m.state == reportsStateMonthly && m.monthly != nil {
		b.WriteString(m.monthlyView())
	} else {
		b.WriteString(m.overviewView())
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

var (
	reportHeaderStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	reportIncomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	reportExpenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func (m ReportsModel) overviewView() string {
	var b strings.Builder

	b.WriteString(reportHeaderStyle.Render("Summary"))
	b.WriteString("\n")

	if summary := m.reportStore.Summary(); summary != nil {
		b.WriteString(fmt.Sprintf("  Income:   %s\n", reportIncomeStyle.Render(FormatAmount(summary.TotalIncome))))
		b.WriteString(fmt.Sprintf("  Expenses: %s\n", reportExpenseStyle.Render(FormatAmount(summary.TotalExpenses))))
		b.WriteString(fmt.Sprintf("  Balance:  %s\n", FormatAmount(summary.NetBalance)))
		b.WriteString(fmt.Sprintf("  Savings rate: %.1f%%\n", summary.SavingsRate))
	} else {
		b.WriteString("  no data\n")
	}

	b.WriteString("\n")
	b.WriteString(reportHeaderStyle.Render("Spending by Category"))
	b.WriteString("\n")

	breakdown := m.reportStore.Breakdown()
	if len(breakdown) == 0 {
		b.WriteString("  no data\n")
	}
	for _, item := range breakdown {
		b.WriteString(fmt.Sprintf("  %-20s %10s  %5.1f%%\n", item.CategoryName, FormatAmount(item.Total), item.Percentage))
	}

	b.WriteString("\n")
	b.WriteString(reportHeaderStyle.Render("Budget Status"))
	b.WriteString("\n")

	status := m.reportStore.BudgetStatus()
	if len(status) == 0 {
		b.WriteString("  no data\n")
	}
	for _, item := range status {
		line := fmt.Sprintf("  %-20s %s of %s  %s", item.CategoryName,
			FormatAmount(item.SpentAmount), FormatAmount(item.LimitAmount),
			progressBar(item.Percentage/100))

		if item.Percentage > 100 {
			line = reportExpenseStyle.Render(line)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func (m ReportsModel) monthlyView() string {
	var b strings.Builder

	b.WriteString(reportHeaderStyle.Render(fmt.Sprintf("%s %d", time.Month(m.monthly.Month), m.monthly.Year)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Income:   %s\n", reportIncomeStyle.Render(FormatAmount(m.monthly.TotalIncome))))
	b.WriteString(fmt.Sprintf("  Expenses: %s\n", reportExpenseStyle.Render(FormatAmount(m.monthly.TotalExpenses))))
	b.WriteString(fmt.Sprintf("  Balance:  %s\n", FormatAmount(m.monthly.NetBalance)))

	if len(m.monthly.TopCategories) > 0 {
		b.WriteString("\n")
		b.WriteString(reportHeaderStyle.Render("Top Categories"))
		b.WriteString("\n")

		for _, item := range m.monthly.TopCategories {
			b.WriteString(fmt.Sprintf("  %-20s %10s  %5.1f%%\n", item.CategoryName, FormatAmount(item.Total), item.Percentage))
		}
	}

	return b.String()
}

// Messages

type loadReportsMsg struct {
	err error
}

func (m ReportsModel) loadCmd() tea.Cmd {
	store := m.reportStore

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if err := store.FetchSummary(ctx, report.PeriodFilter{}); err != nil {
			return loadReportsMsg{err: err}
		}

		if err := store.FetchBreakdown(ctx, report.PeriodFilter{}); err != nil {
			return loadReportsMsg{err: err}
		}

		return loadReportsMsg{err: store.FetchBudgetStatus(ctx)}
	}
}

type monthlyReportMsg struct {
	monthly *report.MonthlyReport
	err     error
}

func (m ReportsModel) monthlyCmd(year int, month time.Month) tea.Cmd {
	store := m.reportStore

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		monthly, err := store.FetchMonthlyReport(ctx, year, month)

		return monthlyReportMsg{monthly: monthly, err: err}
	}
}

type chartsSavedMsg struct {
	dir string
	err error
}

// saveChartsCmd renders the cached summary and breakdown as PNGs beside the
// working directory.
func (m ReportsModel) saveChartsCmd() tea.Cmd {
	summary := m.reportStore.Summary()
	breakdown := m.reportStore.Breakdown()

	return func() tea.Msg {
		dir, err := os.Getwd()
		if err != nil {
			return chartsSavedMsg{err: err}
		}

		stamp := time.Now().Format("2006-01-02")

		if summary != nil {
			png, err := chart.IncomeVsExpenses(summary)
			if err != nil {
				return chartsSavedMsg{err: err}
			}

			path := filepath.Join(dir, fmt.Sprintf("summary-%s.png", stamp))
			if err := os.WriteFile(path, png, 0o644); err != nil {
				return chartsSavedMsg{err: err}
			}
		}

		if len(breakdown) > 0 {
			png, err := chart.SpendingByCategory(breakdown)
			if err != nil {
				return chartsSavedMsg{err: err}
			}

			path := filepath.Join(dir, fmt.Sprintf("spending-%s.png", stamp))
			if err := os.WriteFile(path, png, 0o644); err != nil {
				return chartsSavedMsg{err: err}
			}
		}

		return chartsSavedMsg{dir: dir}
	}
}
