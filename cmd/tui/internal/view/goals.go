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
	"centavo/internal/date"
	"centavo/internal/money"
	"centavo/internal/notify"
)

type goalsState int

const (
	goalsStateList goalsState = iota
	goalsStateEditing
	goalsStateProgress
)

type goalItem struct {
	goal budget.Goal
}

func (i goalItem) Title() string {
	name := i.goal.Name
	if i.goal.IsCompleted {
		name = lipgloss.NewStyle().Strikethrough(true).Render(name) +
			lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(" ✓")
	}

	return name
}

func (i goalItem) Description() string {
	return fmt.Sprintf("%s  %s of %s  (due %s)",
		progressBar(i.goal.Progress()),
		FormatAmount(i.goal.CurrentAmount),
		FormatAmount(i.goal.TargetAmount),
		FormatDate(i.goal.TargetDate),
	)
}

func (i goalItem) FilterValue() string { return i.goal.Name }

// progressBar renders a ten-cell bar, capped at full.
func progressBar(ratio float64) string {
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}

	filled := int(ratio * 10)

	return fmt.Sprintf("[%s%s] %3.0f%%",
		strings.Repeat("█", filled),
		strings.Repeat("░", 10-filled),
		ratio*100,
	)
}

type GoalsModel struct {
	CommonModel
	budgetStore *budget.Store
	trigger     *notify.Trigger

	state      goalsState
	list       list.Model
	form       *huh.Form
	selectedID *uuid.UUID

	loading bool
	status  string

	// Form field bindings
	formName     string
	formDesc     string
	formTarget   string
	formCurrent  string
	formDate     string
	formCategory string
	formProgress string
}

func NewGoalsModel(budgetStore *budget.Store, trigger *notify.Trigger) GoalsModel {
	l := list.New([]list.Item{}, goalItemDelegate{}, 0, 0)
	l.Title = "Goals"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return GoalsModel{
		budgetStore: budgetStore,
		trigger:     trigger,
		list:        l,
		loading:     true,
	}
}

func (m GoalsModel) Title() string { return "Savings Goals" }

func (m GoalsModel) ShortHelp() string {
	switch m.state {
	case goalsStateEditing, goalsStateProgress:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back | n: new | Enter: edit | p: add progress | c: complete | d: delete"
}

func (m GoalsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m GoalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadGoalsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.refreshListItems()

		if len(m.budgetStore.Goals()) == 0 {
			m.status = "No goals yet. Press n to create one."
		}

		return m, nil

	case goalResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.state = goalsStateList

			return m, nil
		}

		m.status = msg.status
		m.state = goalsStateList
		m.refreshListItems()

		return m, nil

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case goalsStateEditing, goalsStateProgress:
		return m.updateForm(msg)
	}

	return m.updateList(msg)
}

func (m GoalsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.list.FilterState() != list.Filtering {
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "n":
				return m.startEditing(nil)
			case "enter":
				if selected, ok := m.list.SelectedItem().(goalItem); ok {
					return m.startEditing(&selected.goal)
				}
			case "p":
				if selected, ok := m.list.SelectedItem().(goalItem); ok {
					return m.startProgress(selected.goal)
				}
			case "c":
				if selected, ok := m.list.SelectedItem().(goalItem); ok {
					return m, m.completeCmd(selected.goal)
				}
			case "d":
				if selected, ok := m.list.SelectedItem().(goalItem); ok {
					return m, m.deleteCmd(selected.goal)
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m GoalsModel) startEditing(goal *budget.Goal) (tea.Model, tea.Cmd) {
	m.selectedID = nil
	m.formName = ""
	m.formDesc = ""
	m.formTarget = ""
	m.formCurrent = "0.00"
	m.formDate = ""
	m.formCategory = ""

	if goal != nil {
		id := goal.ID
		m.selectedID = &id
		m.formName = goal.Name
		m.formDesc = goal.Description
		m.formTarget = goal.TargetAmount.String()
		m.formCurrent = goal.CurrentAmount.String()
		m.formDate = goal.TargetDate.String()
		m.formCategory = goal.Category.String()
	}

	categories := m.budgetStore.Categories()
	options := make([]huh.Option[string], 0, len(categories)+1)
	options = append(options, huh.NewOption("(none)", ""))
	for _, c := range categories {
		options = append(options, huh.NewOption(c.Name, c.ID.String()))
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

			huh.NewInput().
				Key("description").
				Title("Description (optional)").
				Value(&m.formDesc),

			huh.NewInput().
				Key("target").
				Title("Target Amount").
				Placeholder("0.00").
				Value(&m.formTarget).
				Validate(func(s string) error {
					amount, err := money.Parse(s)
					if err != nil {
						return fmt.Errorf("invalid amount")
					}
					if amount.IsZero() || amount.IsNegative() {
						return fmt.Errorf("target must be positive")
					}
					return nil
				}),

			huh.NewInput().
				Key("current").
				Title("Current Amount").
				Placeholder("0.00").
				Value(&m.formCurrent),

			huh.NewInput().
				Key("target_date").
				Title("Target Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(validDate),

			huh.NewSelect[string]().
				Key("category").
				Title("Category (optional)").
				Options(options...).
				Value(&m.formCategory),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = goalsStateEditing

	return m, m.form.Init()
}

func (m GoalsModel) startProgress(goal budget.Goal) (tea.Model, tea.Cmd) {
	id := goal.ID
	m.selectedID = &id
	m.formName = goal.Name
	m.formCurrent = goal.CurrentAmount.String()
	m.formProgress = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("progress").
				Title(fmt.Sprintf("Add to %q (current %s)", goal.Name, FormatAmount(goal.CurrentAmount))).
				Placeholder("0.00").
				Value(&m.formProgress).
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
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = goalsStateProgress

	return m, m.form.Init()
}

func (m GoalsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = goalsStateList
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

	if m.state == goalsStateProgress {
		return m, m.progressCmd()
	}

	return m, m.saveCmd()
}

func (m GoalsModel) View() string {
	switch m.state {
	case goalsStateEditing, goalsStateProgress:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading goals...")
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())
}

func (m *GoalsModel) refreshListItems() {
	goals := m.budgetStore.Goals()

	items := make([]list.Item, len(goals))
	for i, g := range goals {
		items[i] = goalItem{goal: g}
	}

	m.list.SetItems(items)
}

// Messages

type loadGoalsMsg struct {
	err error
}

func (m GoalsModel) loadCmd() tea.Cmd {
	store := m.budgetStore

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if err := store.FetchCategories(ctx, budget.ListFilter{}); err != nil {
			return loadGoalsMsg{err: err}
		}

		return loadGoalsMsg{err: store.FetchGoals(ctx, budget.ListFilter{})}
	}
}

type goalResultMsg struct {
	status string
	err    error
}

func (m GoalsModel) saveCmd() tea.Cmd {
	store := m.budgetStore
	trigger := m.trigger
	selectedID := m.selectedID

	target, _ := money.Parse(m.formTarget)
	current, _ := money.Parse(m.formCurrent)
	targetDate, _ := date.Parse(m.formDate)
	category, _ := uuid.Parse(m.formCategory)

	params := budget.GoalParams{
		Name:          m.formName,
		Description:   m.formDesc,
		TargetAmount:  target,
		CurrentAmount: current,
		TargetDate:    targetDate,
		Category:      category,
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if selectedID != nil {
			if _, err := store.UpdateGoal(ctx, *selectedID, params); err != nil {
				return goalResultMsg{err: err}
			}

			return goalResultMsg{status: "Saved."}
		}

		if _, err := store.CreateGoal(ctx, params); err != nil {
			return goalResultMsg{err: err}
		}

		trigger.GoalCreated(ctx, params.Name)

		return goalResultMsg{status: "Goal created."}
	}
}

func (m GoalsModel) progressCmd() tea.Cmd {
	store := m.budgetStore
	trigger := m.trigger
	id := *m.selectedID
	name := m.formName

	added, _ := money.Parse(m.formProgress)
	current, _ := money.Parse(m.formCurrent)
	total := current.Add(added)

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		updated, err := store.UpdateGoalProgress(ctx, id, total)
		if err != nil {
			return goalResultMsg{err: err}
		}

		trigger.GoalProgressUpdated(ctx, name, added)

		if !updated.IsCompleted && !updated.CurrentAmount.LessThan(updated.TargetAmount) {
			if _, err := store.MarkGoalCompleted(ctx, id); err == nil {
				trigger.GoalCompleted(ctx, name)

				return goalResultMsg{status: fmt.Sprintf("Goal %q completed!", name)}
			}
		}

		return goalResultMsg{status: "Progress updated."}
	}
}

func (m GoalsModel) completeCmd(goal budget.Goal) tea.Cmd {
	store := m.budgetStore
	trigger := m.trigger

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if _, err := store.MarkGoalCompleted(ctx, goal.ID); err != nil {
			return goalResultMsg{err: err}
		}

		trigger.GoalCompleted(ctx, goal.Name)

		return goalResultMsg{status: fmt.Sprintf("Goal %q completed!", goal.Name)}
	}
}

func (m GoalsModel) deleteCmd(goal budget.Goal) tea.Cmd {
	store := m.budgetStore
	trigger := m.trigger

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if err := store.DeleteGoal(ctx, goal.ID); err != nil {
			return goalResultMsg{err: err}
		}

		trigger.GoalDeleted(ctx, goal.Name)

		return goalResultMsg{status: "Deleted."}
	}
}

type goalItemDelegate struct{}

func (d goalItemDelegate) Height() int                             { return 2 }
func (d goalItemDelegate) Spacing() int                            { return 0 }
func (d goalItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d goalItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(goalItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n    %s\n", title, lipgloss.NewStyle().Faint(true).Render(i.Description()))
}
