package view

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"centavo/internal/budget"
	"centavo/internal/importer"
	"centavo/internal/notify"
	"centavo/internal/transaction"
)

type importState int

const (
	importStateFormatSelect importState = iota
	importStateCategories
	importStateFilePick
	importStatePreview
	importStateImporting
	importStateResult
)

// ImportModel drives a statement import: pick a bank format, pick the
// categories parsed rows land in, pick the file, then submit every row
// through the ordinary create endpoints.
type ImportModel struct {
	CommonModel
	txStore       *transaction.Store
	budgetStore   *budget.Store
	importService *importer.Service
	trigger       *notify.Trigger

	state          importState
	filePicker     filepicker.Model
	form           *huh.Form
	formatOptions  []importer.Format
	formatCursor   int
	selectedFormat importer.Format

	rows   []importer.Row
	status string
	err    error

	formIncomeCategory  string
	formExpenseCategory string
}

func NewImportModel(txStore *transaction.Store, budgetStore *budget.Store, impSvc *importer.Service, trigger *notify.Trigger) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.Height = 15

	return ImportModel{
		txStore:       txStore,
		budgetStore:   budgetStore,
		importService: impSvc,
		trigger:       trigger,
		filePicker:    fp,
		formatOptions: impSvc.Formats(),
	}
}

func (m ImportModel) Title() string { return "Import Transactions" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateFormatSelect:
		return "Esc: back | ↑/↓: choose format | Enter: select"
	case importStateCategories:
		return "Esc: back | Enter: continue"
	case importStateFilePick:
		return "Esc: back | Enter: pick file"
	case importStatePreview:
		return "Esc: back | Enter: import"
	}

	return "Esc: back"
}

func (m ImportModel) Init() tea.Cmd {
	return tea.Batch(m.filePicker.Init(), m.loadCategoriesCmd())
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateFormatSelect {
			return m.updateFormatSelect(msg)
		}

		if m.state == importStatePreview && msg.Type == tea.KeyEnter {
			m.state = importStateImporting
			m.status = ""

			return m, m.submitCmd(m.rows)
		}

	case rowsParsedMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		if len(msg.rows) == 0 {
			m.state = importStateResult
			m.status = "No transactions found in that file."

			return m, nil
		}

		m.rows = msg.rows
		m.state = importStatePreview

		return m, nil

	case importDoneMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d of %d transactions.", msg.imported, msg.total)
		if msg.skipped > 0 {
			m.status += fmt.Sprintf(" Skipped %d (see first error: %v)", msg.skipped, msg.firstErr)
		}

		return m, nil
	}

	switch m.state {
	case importStateCategories:
		return m.updateCategoryForm(msg)
	case importStateFilePick:
		return m.updateFilePick(msg)
	}

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFormatSelect, importStateResult:
		return m, Back
	case importStateCategories:
		m.state = importStateFormatSelect
		m.form = nil

		return m, nil
	case importStateFilePick:
		return m.startCategoryForm()
	case importStatePreview:
		m.rows = nil
		m.state = importStateFilePick

		return m, nil
	}

	return m, nil
}

func (m ImportModel) updateFormatSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.formatCursor > 0 {
			m.formatCursor--
		}
	case "down", "j":
		if m.formatCursor < len(m.formatOptions)-1 {
			m.formatCursor++
		}
	case "enter":
		m.selectedFormat = m.formatOptions[m.formatCursor]
		return m.startCategoryForm()
	}

	return m, nil
}

func (m ImportModel) startCategoryForm() (tea.Model, tea.Cmd) {
	incomeOptions := categoryOptions(m.budgetStore.CategoriesByType(budget.CategoryIncome))
	expenseOptions := categoryOptions(m.budgetStore.CategoriesByType(budget.CategoryExpense))

	if len(incomeOptions) == 0 || len(expenseOptions) == 0 {
		m.status = "Create at least one income and one expense category first."
		m.state = importStateResult

		return m, nil
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("income_category").
				Title("Category for incoming amounts").
				Options(incomeOptions...).
				Value(&m.formIncomeCategory),

			huh.NewSelect[string]().
				Key("expense_category").
				Title("Category for outgoing amounts").
				Options(expenseOptions...).
				Value(&m.formExpenseCategory),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = importStateCategories

	return m, m.form.Init()
}

func categoryOptions(categories []budget.Category) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(categories))
	for _, c := range categories {
		options = append(options, huh.NewOption(c.Name, c.ID.String()))
	}

	return options
}

func (m ImportModel) updateCategoryForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = importStateFilePick

	return m, nil
}

func (m ImportModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if selected, path := m.filePicker.DidSelectFile(msg); selected {
		m.status = ""
		return m, m.parseCmd(path)
	}

	return m, cmd
}

func (m ImportModel) View() string {
	padded := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case importStateFormatSelect:
		var b strings.Builder
		b.WriteString("Select statement format:\n\n")

		for i, f := range m.formatOptions {
			cursor := "  "
			if i == m.formatCursor {
				cursor = "> "
			}

			b.WriteString(fmt.Sprintf("%s%s\n", cursor, f))
		}

		return padded.Render(b.String())

	case importStateCategories:
		if m.form == nil {
			return ""
		}

		return padded.Render(m.form.View())

	case importStateFilePick:
		return padded.Render("Pick a statement file:\n\n" + m.filePicker.View())

	case importStatePreview:
		var b strings.Builder
		b.WriteString(fmt.Sprintf("Parsed %d transactions:\n\n", len(m.rows)))

		shown := m.rows
		if len(shown) > 15 {
			shown = shown[:15]
		}

		for _, row := range shown {
			sign := "+"
			if row.Type == transaction.TypeExpense {
				sign = "-"
			}

			b.WriteString(fmt.Sprintf("  %s  %s%s  %s\n",
				FormatDate(row.Params.Date), sign, FormatAmount(row.Params.Amount), row.Params.Description))
		}

		if len(m.rows) > len(shown) {
			b.WriteString(fmt.Sprintf("  ... and %d more\n", len(m.rows)-len(shown)))
		}

		b.WriteString("\n(Enter to import, Esc to pick another file)")

		return padded.Render(b.String())

	case importStateImporting:
		return padded.Render("Importing...")
	}

	return padded.Render(m.status)
}

// Messages

type rowsParsedMsg struct {
	rows []importer.Row
	err  error
}

func (m ImportModel) parseCmd(path string) tea.Cmd {
	service := m.importService
	format := m.selectedFormat

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return rowsParsedMsg{err: err}
		}
		defer f.Close()

		rows, err := service.Import(format, f)

		return rowsParsedMsg{rows: rows, err: err}
	}
}

type importDoneMsg struct {
	imported int
	skipped  int
	total    int
	firstErr error
	err      error
}

func (m ImportModel) submitCmd(rows []importer.Row) tea.Cmd {
	txStore := m.txStore
	trigger := m.trigger

	incomeCategory, _ := uuid.Parse(m.formIncomeCategory)
	expenseCategory, _ := uuid.Parse(m.formExpenseCategory)

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		var imported, skipped int
		var firstErr error

		for _, row := range rows {
			params := row.Params

			var err error
			switch row.Type {
			case transaction.TypeIncome:
				params.Category = incomeCategory
				if _, err = txStore.CreateIncome(ctx, params); err == nil {
					trigger.IncomeAdded(ctx, params.Amount, params.Description)
				}
			case transaction.TypeExpense:
				params.Category = expenseCategory
				if _, err = txStore.CreateExpense(ctx, params); err == nil {
					trigger.ExpenseRecorded(ctx, params.Amount, params.Description)
				}
			}

			if err != nil {
				skipped++
				if firstErr == nil {
					firstErr = err
				}

				continue
			}

			imported++
		}

		return importDoneMsg{imported: imported, skipped: skipped, total: len(rows), firstErr: firstErr}
	}
}

func (m ImportModel) loadCategoriesCmd() tea.Cmd {
	store := m.budgetStore

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return loadCategoriesMsg{err: store.FetchCategories(ctx, budget.ListFilter{})}
	}
}
