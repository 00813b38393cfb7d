package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"centavo/internal/budget"
)

type categoriesState int

const (
	categoriesStateList categoriesState = iota
	categoriesStateEditing
)

type categoryItem struct {
	category budget.Category
}

func (i categoryItem) Title() string {
	icon := i.category.Icon
	if icon == "" {
		icon = "·"
	}

	return fmt.Sprintf("%s %s  [%s]", icon, i.category.Name, i.category.Type)
}

func (i categoryItem) Description() string { return i.category.Description }
func (i categoryItem) FilterValue() string { return i.category.Name }

type CategoriesModel struct {
	CommonModel
	budgetStore *budget.Store

	state      categoriesState
	list       list.Model
	form       *huh.Form
	selectedID *uuid.UUID

	loading bool
	status  string

	// Form field bindings
	formName string
	formType string
	formIcon string
	formDesc string
}

func NewCategoriesModel(budgetStore *budget.Store) CategoriesModel {
	l := list.New([]list.Item{}, categoryItemDelegate{}, 0, 0)
	l.Title = "Categories"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return CategoriesModel{
		budgetStore: budgetStore,
		list:        l,
		loading:     true,
	}
}

func (m CategoriesModel) Title() string { return "Manage Categories" }

func (m CategoriesModel) ShortHelp() string {
	if m.state == categoriesStateEditing {
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back | n: new | Enter: edit | d: delete | /: filter"
}

func (m CategoriesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CategoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCategoriesMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.refreshListItems()

		return m, nil

	case saveCategoryResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			m.state = categoriesStateList

			return m, nil
		}

		m.status = "Saved."
		m.state = categoriesStateList
		m.refreshListItems()

		return m, nil

	case deleteCategoryResultMsg:
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

	if m.state == categoriesStateEditing {
		return m.updateEditing(msg)
	}

	return m.updateList(msg)
}

func (m CategoriesModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.list.FilterState() != list.Filtering {
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "n":
				return m.startEditing(nil)
			case "enter":
				selected, ok := m.list.SelectedItem().(categoryItem)
				if !ok {
					return m, nil
				}

				return m.startEditing(&selected.category)
			case "d":
				selected, ok := m.list.SelectedItem().(categoryItem)
				if !ok {
					return m, nil
				}

				return m, m.deleteCmd(selected.category.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m CategoriesModel) startEditing(category *budget.Category) (tea.Model, tea.Cmd) {
	m.selectedID = nil
	m.formName = ""
	m.formType = string(budget.CategoryExpense)
	m.formIcon = ""
	m.formDesc = ""

	if category != nil {
		id := category.ID
		m.selectedID = &id
		m.formName = category.Name
		m.formType = string(category.Type)
		m.formIcon = category.Icon
		m.formDesc = category.Description
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", string(budget.CategoryExpense)),
					huh.NewOption("Income", string(budget.CategoryIncome)),
				).
				Value(&m.formType),

			huh.NewInput().
				Key("icon").
				Title("Icon (optional)").
				Placeholder("🛒").
				Value(&m.formIcon),

			huh.NewInput().
				Key("description").
				Title("Description (optional)").
				Value(&m.formDesc),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = categoriesStateEditing

	return m, m.form.Init()
}

func (m CategoriesModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = categoriesStateList
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

func (m CategoriesModel) View() string {
	if m.state == categoriesStateEditing {
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading categories...")
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())
}

func (m *CategoriesModel) refreshListItems() {
	categories := m.budgetStore.Categories()

	items := make([]list.Item, len(categories))
	for i, c := range categories {
		items[i] = categoryItem{category: c}
	}

	m.list.SetItems(items)
}

// Messages

func (m CategoriesModel) loadCmd() tea.Cmd {
	store := m.budgetStore

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return loadCategoriesMsg{err: store.FetchCategories(ctx, budget.ListFilter{})}
	}
}

type saveCategoryResultMsg struct {
	err error
}

func (m CategoriesModel) saveCmd() tea.Cmd {
	store := m.budgetStore
	selectedID := m.selectedID
	params := budget.CategoryParams{
		Name:        m.formName,
		Type:        budget.CategoryType(m.formType),
		Icon:        m.formIcon,
		Description: m.formDesc,
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		var err error
		if selectedID != nil {
			_, err = store.UpdateCategory(ctx, *selectedID, params)
		} else {
			_, err = store.CreateCategory(ctx, params)
		}

		return saveCategoryResultMsg{err: err}
	}
}

type deleteCategoryResultMsg struct {
	err error
}

func (m CategoriesModel) deleteCmd(id uuid.UUID) tea.Cmd {
	store := m.budgetStore

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return deleteCategoryResultMsg{err: store.DeleteCategory(ctx, id)}
	}
}

type categoryItemDelegate struct{}

func (d categoryItemDelegate) Height() int                             { return 2 }
func (d categoryItemDelegate) Spacing() int                            { return 0 }
func (d categoryItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d categoryItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(categoryItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)

	if i.Description() == "" {
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(i.Description()))
}
