package budget

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"centavo/internal/money"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=budget

// API is the slice of the financial service the budget store talks to.
type API interface {
	ListCategories(ctx context.Context, filter ListFilter) ([]Category, error)
	CreateCategory(ctx context.Context, params CategoryParams) (*Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, params CategoryParams) (*Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListBudgets(ctx context.Context, filter ListFilter) ([]Budget, error)
	CreateBudget(ctx context.Context, params BudgetParams) (*Budget, error)
	UpdateBudget(ctx context.Context, id uuid.UUID, params BudgetParams) (*Budget, error)
	DeleteBudget(ctx context.Context, id uuid.UUID) error

	ListGoals(ctx context.Context, filter ListFilter) ([]Goal, error)
	CreateGoal(ctx context.Context, params GoalParams) (*Goal, error)
	UpdateGoal(ctx context.Context, id uuid.UUID, params GoalParams) (*Goal, error)
	DeleteGoal(ctx context.Context, id uuid.UUID) error
	MarkGoalCompleted(ctx context.Context, id uuid.UUID) (*Goal, error)
	UpdateGoalProgress(ctx context.Context, id uuid.UUID, current money.Amount) (*Goal, error)
}

// Store caches the category, budget and goal collections.
type Store struct {
	api API

	mu         sync.RWMutex
	categories []Category
	budgets    []Budget
	goals      []Goal
	loading    bool
	err        string
}

func NewStore(api API) *Store {
	return &Store{api: api}
}

func (s *Store) FetchCategories(ctx context.Context, filter ListFilter) error {
	s.setLoading()

	categories, err := s.api.ListCategories(ctx, filter)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.categories = categories
	s.loading = false
	s.mu.Unlock()

	return nil
}

func (s *Store) CreateCategory(ctx context.Context, params CategoryParams) (*Category, error) {
	s.setLoading()

	created, err := s.api.CreateCategory(ctx, params)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	s.categories = append([]Category{*created}, s.categories...)
	s.loading = false
	s.mu.Unlock()

	return created, nil
}

func (s *Store) UpdateCategory(ctx context.Context, id uuid.UUID, params CategoryParams) (*Category, error) {
	s.setLoading()

	updated, err := s.api.UpdateCategory(ctx, id, params)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i] = *updated
			break
		}
	}
	s.loading = false
	s.mu.Unlock()

	return updated, nil
}

func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	s.setLoading()

	if err := s.api.DeleteCategory(ctx, id); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	kept := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.categories = kept
	s.loading = false
	s.mu.Unlock()

	return nil
}

func (s *Store) FetchBudgets(ctx context.Context, filter ListFilter) error {
	s.setLoading()

	budgets, err := s.api.ListBudgets(ctx, filter)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.budgets = budgets
	s.loading = false
	s.mu.Unlock()

	return nil
}

func (s *Store) CreateBudget(ctx context.Context, params BudgetParams) (*Budget, error) {
	s.setLoading()

	created, err := s.api.CreateBudget(ctx, params)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	s.budgets = append([]Budget{*created}, s.budgets...)
	s.loading = false
	s.mu.Unlock()

	return created, nil
}

func (s *Store) UpdateBudget(ctx context.Context, id uuid.UUID, params BudgetParams) (*Budget, error) {
	s.setLoading()

	updated, err := s.api.UpdateBudget(ctx, id, params)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	for i := range s.budgets {
		if s.budgets[i].ID == id {
			s.budgets[i] = *updated
			break
		}
	}
	s.loading = false
	s.mu.Unlock()

	return updated, nil
}

func (s *Store) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	s.setLoading()

	if err := s.api.DeleteBudget(ctx, id); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	kept := s.budgets[:0]
	for _, b := range s.budgets {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.budgets = kept
	s.loading = false
	s.mu.Unlock()

	return nil
}

func (s *Store) FetchGoals(ctx context.Context, filter ListFilter) error {
	s.setLoading()

	goals, err := s.api.ListGoals(ctx, filter)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.goals = goals
	s.loading = false
	s.mu.Unlock()

	return nil
}

func (s *Store) CreateGoal(ctx context.Context, params GoalParams) (*Goal, error) {
	s.setLoading()

	created, err := s.api.CreateGoal(ctx, params)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	s.goals = append([]Goal{*created}, s.goals...)
	s.loading = false
	s.mu.Unlock()

	return created, nil
}

func (s *Store) UpdateGoal(ctx context.Context, id uuid.UUID, params GoalParams) (*Goal, error) {
	s.setLoading()

	updated, err := s.api.UpdateGoal(ctx, id, params)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.replaceGoal(id, updated)

	return updated, nil
}

func (s *Store) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	s.setLoading()

	if err := s.api.DeleteGoal(ctx, id); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	kept := s.goals[:0]
	for _, g := range s.goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	s.goals = kept
	s.loading = false
	s.mu.Unlock()

	return nil
}

// MarkGoalCompleted sets the explicit completion flag server-side and splices
// the returned record in.
func (s *Store) MarkGoalCompleted(ctx context.Context, id uuid.UUID) (*Goal, error) {
	s.setLoading()

	updated, err := s.api.MarkGoalCompleted(ctx, id)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.replaceGoal(id, updated)

	return updated, nil
}

// UpdateGoalProgress sets the goal's current amount server-side.
func (s *Store) UpdateGoalProgress(ctx context.Context, id uuid.UUID, current money.Amount) (*Goal, error) {
	s.setLoading()

	updated, err := s.api.UpdateGoalProgress(ctx, id, current)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.replaceGoal(id, updated)

	return updated, nil
}

func (s *Store) replaceGoal(id uuid.UUID, updated *Goal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.goals {
		if s.goals[i].ID == id {
			s.goals[i] = *updated
			break
		}
	}

	s.loading = false
}

// Categories returns a copy of the cached category collection.
func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Category(nil), s.categories...)
}

// Budgets returns a copy of the cached budget collection.
func (s *Store) Budgets() []Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Budget(nil), s.budgets...)
}

// Goals returns a copy of the cached goal collection.
func (s *Store) Goals() []Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Goal(nil), s.goals...)
}

// CategoryByID looks up a cached category, or nil.
func (s *Store) CategoryByID(id uuid.UUID) *Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.categories {
		if s.categories[i].ID == id {
			c := s.categories[i]
			return &c
		}
	}

	return nil
}

// CategoriesByType filters cached categories by direction.
func (s *Store) CategoriesByType(t CategoryType) []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Category

	for _, c := range s.categories {
		if c.Type == t {
			out = append(out, c)
		}
	}

	return out
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loading
}

func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.err
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.err = ""
}

func (s *Store) setLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = true
	s.err = ""
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	s.err = err.Error()
}
