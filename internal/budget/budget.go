package budget

import (
	"net/url"
	"time"

	"github.com/google/uuid"

	"centavo/internal/date"
	"centavo/internal/money"
)

// CategoryType matches transaction direction: a category classifies either
// income or expenses, never both.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// Category is referenced by transactions, budgets and goals through its id.
// The reference is non-owning: deleting a category does not cascade
// client-side.
type Category struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Type        CategoryType `json:"type"`
	Icon        string       `json:"icon,omitempty"`
	Description string       `json:"description,omitempty"`
}

// Budget is a spending ceiling for a category over a date range.
type Budget struct {
	ID          uuid.UUID    `json:"id"`
	Category    uuid.UUID    `json:"category"`
	LimitAmount money.Amount `json:"limit_amount"`
	StartDate   date.Date    `json:"start_date"`
	EndDate     date.Date    `json:"end_date"`
}

// Active reports whether the budget's date range covers now. This is derived,
// never stored.
func (b Budget) Active(now time.Time) bool {
	day := date.FromTime(now)

	return !b.StartDate.After(day) && !b.EndDate.Before(day)
}

// Goal is a savings target. Completion is the explicit flag only; reaching
// 100% progress does not flip it.
type Goal struct {
	ID            uuid.UUID    `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	TargetAmount  money.Amount `json:"target_amount"`
	CurrentAmount money.Amount `json:"current_amount"`
	TargetDate    date.Date    `json:"target_date"`
	Category      uuid.UUID    `json:"category"`
	IsCompleted   bool         `json:"is_completed"`
}

// Progress is current/target in [0..], or 0 when the target is zero.
func (g Goal) Progress() float64 {
	return g.CurrentAmount.Ratio(g.TargetAmount)
}

type CategoryParams struct {
	Name        string       `json:"name"`
	Type        CategoryType `json:"type"`
	Icon        string       `json:"icon,omitempty"`
	Description string       `json:"description,omitempty"`
}

type BudgetParams struct {
	Category    uuid.UUID    `json:"category"`
	LimitAmount money.Amount `json:"limit_amount"`
	StartDate   date.Date    `json:"start_date"`
	EndDate     date.Date    `json:"end_date"`
}

type GoalParams struct {
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	TargetAmount  money.Amount `json:"target_amount"`
	CurrentAmount money.Amount `json:"current_amount"`
	TargetDate    date.Date    `json:"target_date"`
	Category      uuid.UUID    `json:"category"`
}

// ListFilter narrows category, budget and goal list calls.
type ListFilter struct {
	Type     CategoryType
	Category *uuid.UUID
}

func (f ListFilter) Query() url.Values {
	q := url.Values{}

	if f.Type != "" {
		q.Set("type", string(f.Type))
	}

	if f.Category != nil {
		q.Set("category", f.Category.String())
	}

	return q
}
