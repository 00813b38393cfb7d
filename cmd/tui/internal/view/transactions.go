package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"centavo/internal/budget"
	"centavo/internal/date"
	"centavo/internal/money"
	"centavo/internal/notify"
	"centavo/internal/report"
	"centavo/internal/transaction"
)

type txState int

const (
	txStateTimeframe txState = iota
	txStateList
	txStateEditing
)

// txItem wraps a transaction to implement list.Item.
type txItem struct {
	tx       transaction.Transaction
	category string
}

func (i txItem) Title() string {
	return fmt.Sprintf("%s  %s  %s", FormatDate(i.tx.Date), FormatAmount(i.tx.Amount), i.tx.Description)
}

func (i txItem) Description() string {
	if i.category == "" {
		return ""
	}

	return i.category
}

func (i txItem) FilterValue() string {
	return i.tx.Description
}

type TransactionsModel struct {
	CommonModel
	txStore     *transaction.Store
	budgetStore *budget.Store
	reportStore *report.Store
	trigger     *notify.Trigger

	state           txState
	kind            transaction.Type
	timeframePicker TimeframePicker
	list            list.Model
	form            *huh.Form

	filter     transaction.ListFilter
	selectedID *uuid.UUID

	loading bool
	status  string

	// Form field bindings
	formCategory string
	formAmount   string
	formDate     string
	formDesc     string
}

func NewTransactionsModel(txStore *transaction.Store, budgetStore *budget.Store, reportStore *report.Store, trigger *notify.Trigger) TransactionsModel {
	l := list.New([]list.Item{}, txItemDelegate{}, 0, 0)
	l.Title = "Expenses"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return TransactionsModel{
		txStore:         txStore,
		budgetStore:     budgetStore,
		reportStore:     reportStore,
		trigger:         trigger,
		kind:            transaction.TypeExpense,
		timeframePicker: NewTimeframePicker(TimeframeThisWeek),
		list:            l,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateTimeframe:
		return "Esc: back | Enter: select"
	case txStateList:
		return "Esc: back | Tab: income/expenses | n: new | Enter: edit | d: delete | t: timeframe | /: filter"
	case txStateEditing:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return ""
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadCategoriesCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.filter = transaction.ListFilter{StartDate: msg.Start, EndDate: msg.End}
		m.loading = true
		m.state = txStateList

		return m, m.loadTxsCmd()

	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.refreshListItems()

		if len(m.currentTxs()) == 0 {
			m.status = fmt.Sprintf("No %s found.", m.kindLabel())
		}

		return m, nil

	case saveTxResultMsg:
		if msg.err != nil {
			var balErr *transaction.InsufficientBalanceError
			if errors.As(msg.err, &balErr) {
				m.status = fmt.Sprintf("Rejected: %s exceeds your balance of %s",
					FormatAmount(balErr.Attempted), FormatAmount(balErr.Available))
			} else {
				m.status = fmt.Sprintf("Error saving: %v", msg.err)
			}

			m.state = txStateList

			return m, nil
		}

		m.status = "Saved."
		m.state = txStateList
		m.refreshListItems()

		return m, nil

	case deleteTxResultMsg:
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

	switch m.state {
	case txStateTimeframe:
		return m.updateTimeframe(msg)
	case txStateList:
		return m.updateList(msg)
	case txStateEditing:
		return m.updateEditing(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.list.FilterState() != list.Filtering {
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "tab":
				if m.kind == transaction.TypeExpense {
					m.kind = transaction.TypeIncome
				} else {
					m.kind = transaction.TypeExpense
				}

				m.status = ""
				m.refreshListItems()

				return m, nil
			case "n":
				return m.startEditing(nil)
			case "enter":
				selected, ok := m.list.SelectedItem().(txItem)
				if !ok {
					return m, nil
				}

				return m.startEditing(&selected.tx)
			case "d":
				selected, ok := m.list.SelectedItem().(txItem)
				if !ok {
					return m, nil
				}

				return m, m.deleteTxCmd(selected.tx.ID)
			case "t":
				m.timeframePicker.Reset()
				m.state = txStateTimeframe

				return m, nil
			case "r":
				m.loading = true
				return m, m.loadTxsCmd()
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m TransactionsModel) startEditing(tx *transaction.Transaction) (tea.Model, tea.Cmd) {
	m.selectedID = nil
	m.formCategory = ""
	m.formAmount = ""
	m.formDate = date.Today().String()
	m.formDesc = ""

	if tx != nil {
		id := tx.ID
		m.selectedID = &id
		m.formCategory = tx.Category.String()
		m.formAmount = tx.Amount.String()
		m.formDate = tx.Date.String()
		m.formDesc = tx.Description
	}

	categoryType := budget.CategoryExpense
	if m.kind == transaction.TypeIncome {
		categoryType = budget.CategoryIncome
	}

	categories := m.budgetStore.CategoriesByType(categoryType)
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
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&m.formAmount).
				Validate(func(s string) error {
					amount, err := money.Parse(s)
					if err != nil {
						return fmt.Errorf("invalid amount")
					}
					if amount.IsZero() || amount.IsNegative() {
						return fmt.Errorf("amount must be positive")
					}
					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := date.Parse(s); err != nil {
						return fmt.Errorf("invalid date (YYYY-MM-DD)")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateEditing

	return m, m.form.Init()
}

func (m TransactionsModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = txStateList
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

	return m, m.saveTxCmd()
}

func (m TransactionsModel) View() string {
	switch m.state {
	case txStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case txStateList:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Loading %s...", m.kindLabel()))
		}

		header := m.totalsView()

		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(header + "\n" + statusLine + m.list.View())

	case txStateEditing:
		if m.form == nil {
			return ""
		}

		title := fmt.Sprintf("New %s", strings.TrimSuffix(m.kindLabel(), "s"))
		if m.selectedID != nil {
			title = fmt.Sprintf("Edit %s", strings.TrimSuffix(m.kindLabel(), "s"))
		}

		return lipgloss.NewStyle().Padding(1).Render(title + "\n\n" + m.form.View())
	}

	return ""
}

func (m TransactionsModel) totalsView() string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(fmt.Sprintf(
			"Income: %s  |  Expenses: %s  |  Balance: %s",
			FormatAmount(m.txStore.TotalIncome()),
			FormatAmount(m.txStore.TotalExpenses()),
			FormatAmount(m.txStore.NetBalance()),
		))
}

func (m TransactionsModel) kindLabel() string {
	if m.kind == transaction.TypeIncome {
		return "incomes"
	}

	return "expenses"
}

func (m TransactionsModel) currentTxs() []transaction.Transaction {
	if m.kind == transaction.TypeIncome {
		return m.txStore.Incomes()
	}

	return m.txStore.Expenses()
}

func (m *TransactionsModel) refreshListItems() {
	txs := m.currentTxs()

	items := make([]list.Item, len(txs))
	for i, tx := range txs {
		name := ""
		if c := m.budgetStore.CategoryByID(tx.Category); c != nil {
			name = c.Name
		}

		items[i] = txItem{tx: tx, category: name}
	}

	m.list.SetItems(items)

	if m.kind == transaction.TypeIncome {
		m.list.Title = "Income"
	} else {
		m.list.Title = "Expenses"
	}
}

// Messages

type loadTxsMsg struct {
	err error
}

func (m TransactionsModel) loadTxsCmd() tea.Cmd {
	store := m.txStore
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if err := store.FetchIncomes(ctx, filter); err != nil {
			return loadTxsMsg{err: err}
		}

		if err := store.FetchExpenses(ctx, filter); err != nil {
			return loadTxsMsg{err: err}
		}

		return loadTxsMsg{}
	}
}

type loadCategoriesMsg struct {
	err error
}

func (m TransactionsModel) loadCategoriesCmd() tea.Cmd {
	store := m.budgetStore

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return loadCategoriesMsg{err: store.FetchCategories(ctx, budget.ListFilter{})}
	}
}

type saveTxResultMsg struct {
	err error
}

func (m TransactionsModel) saveTxCmd() tea.Cmd {
	store := m.txStore
	reportStore := m.reportStore
	trigger := m.trigger
	kind := m.kind
	selectedID := m.selectedID

	categoryName := ""
	categoryID, err := uuid.Parse(m.formCategory)
	if err == nil {
		if c := m.budgetStore.CategoryByID(categoryID); c != nil {
			categoryName = c.Name
		}
	}

	amount, _ := money.Parse(m.formAmount)
	day, _ := date.Parse(m.formDate)

	params := transaction.CreateParams{
		Category:    categoryID,
		Amount:      amount,
		Date:        day,
		Description: m.formDesc,
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if selectedID != nil {
			var err error
			if kind == transaction.TypeIncome {
				_, err = store.UpdateIncome(ctx, *selectedID, params)
			} else {
				_, err = store.UpdateExpense(ctx, *selectedID, params)
			}

			return saveTxResultMsg{err: err}
		}

		if kind == transaction.TypeIncome {
			if _, err := store.CreateIncome(ctx, params); err != nil {
				return saveTxResultMsg{err: err}
			}

			trigger.IncomeAdded(ctx, params.Amount, categoryName)

			return saveTxResultMsg{}
		}

		if _, err := store.CreateExpense(ctx, params); err != nil {
			return saveTxResultMsg{err: err}
		}

		trigger.ExpenseRecorded(ctx, params.Amount, categoryName)
		notifyBudgetThresholds(ctx, reportStore, trigger, params.Category)

		return saveTxResultMsg{}
	}
}

// notifyBudgetThresholds re-reads budget consumption after an expense lands
// and raises a warning at 80% or an exceeded alert past the limit. Failures
// to fetch the status are ignored; the expense itself already succeeded.
func notifyBudgetThresholds(ctx context.Context, reportStore *report.Store, trigger *notify.Trigger, category uuid.UUID) {
	if err := reportStore.FetchBudgetStatus(ctx); err != nil {
		return
	}

	for _, item := range reportStore.BudgetStatus() {
		if item.Category != category {
			continue
		}

		switch {
		case item.Percentage > 100:
			trigger.BudgetExceeded(ctx, item.CategoryName, item.SpentAmount.Sub(item.LimitAmount))
		case item.Percentage >= 80:
			trigger.BudgetWarning(ctx, item.CategoryName, int(item.Percentage))
		}

		return
	}
}

type deleteTxResultMsg struct {
	err error
}

func (m TransactionsModel) deleteTxCmd(id uuid.UUID) tea.Cmd {
	store := m.txStore
	kind := m.kind

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if kind == transaction.TypeIncome {
			return deleteTxResultMsg{err: store.DeleteIncome(ctx, id)}
		}

		return deleteTxResultMsg{err: store.DeleteExpense(ctx, id)}
	}
}

// txItemDelegate renders items in the list.
type txItemDelegate struct{}

func (d txItemDelegate) Height() int                             { return 2 }
func (d txItemDelegate) Spacing() int                            { return 0 }
func (d txItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d txItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(txItem)
	if !ok {
		return
	}

	title := i.Title()
	desc := i.Description()

	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)

	if desc == "" {
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(desc))
}
