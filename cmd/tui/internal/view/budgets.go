package view

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"centavo/internal/budget"
	"centavo/internal/date"
	"centavo/internal/money"
)

type budgetsState int

const (
	budgetsStateList budgetsState = iota
	budgetsStateEditing
)

type budgetItem struct {
	budget   budget.Budget
	category string
}

func (i budgetItem) Title() string {
	active := ""
	if i.budget.Active(time.Now()) {
		active = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(" [active]")
	}

	return fmt.Sprintf("%s  limit %s%s", i.category, FormatAmount(i.budget.LimitAmount), active)
}

func (i budgetItem) Description() string {
	return fmt.Sprintf("%s to %s", FormatDate(i.budget.StartDate), FormatDate(i.budget.EndDate))
}

func (i budgetItem) FilterValue() string { return i.category }

type BudgetsModel struct {
	CommonModel
	budgetStore *budget.Store

	state      budgetsState
	list       list.Model
	form       *huh.Form
	selectedID *uuid.UUID

	loading bool
	status  string

	// Form field bindings
	formCategory string
	formLimit    string
	formStart    string
	formEnd      string
}

func NewBudgetsModel(budgetStore *budget.Store) BudgetsModel {
	l := list.New([]list.Item{}, budgetItemDelegate{}, 0, 0)
	l.Title = "Budgets"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return BudgetsModel{
		budgetStore: budgetStore,
		list:        l,
		loading:     true,
	}
}

func (m BudgetsModel) Title() string { return "Manage Budgets" }

func (m BudgetsModel) ShortHelp() string {
	if m.state == budgetsStateEditing {
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back | n: new | Enter: edit | d: delete | /: filter"
}

func (m BudgetsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BudgetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadBudgetsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.refreshListItems()

		if len(m.budgetStore.Budgets()) == 0 {
			m.status = "No budgets yet. Press n to create one."
		}

		return m, nil

	case saveBudgetResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			m.state = budgetsStateList

			return m, nil
		}

		m.status = "Saved."
		m.state = budgetsStateList
		m.refreshListItems()

		return m, nil

	case deleteBudgetResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
			return m, nil
		}

		m.status = "Deleted."
		m.refreshListItems()

		return m, nil

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	if m.state == budgetsStateEditing {
		return m.updateEditing(msg)
	}

	return m.updateList(msg)
}

func (m BudgetsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.list.FilterState() != list.Filtering {
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "n":
				return m.startEditing(nil)
			case "enter":
				selected, ok := m.list.SelectedItem().(budgetItem)
				if !ok {
					return m, nil
				}

				return m.startEditing(&selected.budget)
			case "d":
				selected, ok := m.list.SelectedItem().(budgetItem)
				if !ok {
					return m, nil
				}

				return m, m.deleteCmd(selected.budget.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m BudgetsModel) startEditing(b *budget.Budget) (tea.Model, tea.Cmd) {
	now := time.Now()
	monthStart := date.New(now.Year(), now.Month(), 1)
	monthEnd := date.FromTime(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1))

	m.selectedID = nil
	m.formCategory = ""
	m.formLimit = ""
	m.formStart = monthStart.String()
	m.formEnd = monthEnd.String()

	if b != nil {
		id := b.ID
		m.selectedID = &id
		m.formCategory = b.Category.String()
		m.formLimit = b.LimitAmount.String()
		m.formStart = b.StartDate.String()
		m.formEnd = b.EndDate.String()
	}

	categories := m.budgetStore.CategoriesByType(budget.CategoryExpense)
	options := make([]huh.Option[string], len(categories))
	for i, c := range categories {
		options[i] = huh.NewOption(c.Name, c.ID.String())
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(options...).
				Value(&m.formCategory),

			huh.NewInput().
				Key("limit").
				Title("Limit").
				Placeholder("0.00").
				Value(&m.formLimit).
				Validate(func(s string) error {
					amount, err := money.Parse(s)
					if err != nil {
						return fmt.Errorf("invalid amount")
					}
					if amount.IsZero() || amount.IsNegative() {
						return fmt.Errorf("limit must be positive")
					}
					return nil
				}),

			huh.NewInput().
				Key("start").
				Title("Start Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formStart).
				Validate(validDate),

			huh.NewInput().
				Key("end").
				Title("End Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formEnd).
				Validate(validDate),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = budgetsStateEditing

	return m, m.form.Init()
}

func (m BudgetsModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = budgetsStateList
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

	return m, m.saveCmd()
}

func (m BudgetsModel) View() string {
	if m.state == budgetsStateEditing {
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading budgets...")
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())
}

func (m *BudgetsModel) refreshListItems() {
	budgets := m.budgetStore.Budgets()

	items := make([]list.Item, len(budgets))
	for i, b := range budgets {
		name := "Unknown category"
		if c := m.budgetStore.CategoryByID(b.Category); c != nil {
			name = c.Name
		}

		items[i] = budgetItem{budget: b, category: name}
	}

	m.list.SetItems(items)
}

// Messages

type loadBudgetsMsg struct {
	err error
}

func (m BudgetsModel) loadCmd() tea.Cmd {
	store := m.budgetStore

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if err := store.FetchCategories(ctx, budget.ListFilter{}); err != nil {
			return loadBudgetsMsg{err: err}
		}

		return loadBudgetsMsg{err: store.FetchBudgets(ctx, budget.ListFilter{})}
	}
}

type saveBudgetResultMsg struct {
	err error
}

func (m BudgetsModel) saveCmd() tea.Cmd {
	store := m.budgetStore
	selectedID := m.selectedID

	category, _ := uuid.Parse(m.formCategory)
	limit, _ := money.Parse(m.formLimit)
	start, _ := date.Parse(m.formStart)
	end, _ := date.Parse(m.formEnd)

	params := budget.BudgetParams{
		Category:    category,
		LimitAmount: limit,
		StartDate:   start,
		EndDate:     end,
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		var err error
		if selectedID != nil {
			_, err = store.UpdateBudget(ctx, *selectedID, params)
		} else {
			_, err = store.CreateBudget(ctx, params)
		}

		return saveBudgetResultMsg{err: err}
	}
}

type deleteBudgetResultMsg struct {
	err error
}

func (m BudgetsModel) deleteCmd(id uuid.UUID) tea.Cmd {
	store := m.budgetStore

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return deleteBudgetResultMsg{err: store.DeleteBudget(ctx, id)}
	}
}

func validDate(s string) error {
	if _, err := date.Parse(s); err != nil {
		return fmt.Errorf("invalid date (YYYY-MM-DD)")
	}

	return nil
}

type budgetItemDelegate struct{}

func (d budgetItemDelegate) Height() int                             { return 2 }
func (d budgetItemDelegate) Spacing() int                            { return 0 }
func (d budgetItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d budgetItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(budgetItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n    %s\n", title, lipgloss.NewStyle().Faint(true).Render(i.Description()))
}
