package report

import (
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"centavo/internal/money"
)

// AlertType classifies a notification for display.
type AlertType string

const (
	AlertDanger  AlertType = "danger"
	AlertSuccess AlertType = "success"
	AlertTip     AlertType = "tip"
	AlertInfo    AlertType = "info"
)

// Alert is a notification record. The server produces most of them; the
// client creates some for its own UI feedback through the same endpoint.
type Alert struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	AlertType AlertType `json:"alert_type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type AlertParams struct {
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	AlertType AlertType `json:"alert_type"`
}

type AlertFilter struct {
	Type AlertType
}

func (f AlertFilter) Query() url.Values {
	q := url.Values{}

	if f.Type != "" {
		q.Set("alert_type", string(f.Type))
	}

	return q
}

// Summary is the dashboard aggregate computed server-side.
type Summary struct {
	TotalIncome   money.Amount `json:"total_income"`
	TotalExpenses money.Amount `json:"total_expenses"`
	NetBalance    money.Amount `json:"net_balance"`
	SavingsRate   float64      `json:"savings_rate,omitempty"`
}

// BreakdownItem is one category's share of spending.
type BreakdownItem struct {
	Category     uuid.UUID    `json:"category"`
	CategoryName string       `json:"category_name"`
	Total        money.Amount `json:"total"`
	Percentage   float64      `json:"percentage"`
}

// BudgetStatusItem is the server's view of one budget's consumption.
type BudgetStatusItem struct {
	Budget       uuid.UUID    `json:"budget"`
	Category     uuid.UUID    `json:"category"`
	CategoryName string       `json:"category_name"`
	LimitAmount  money.Amount `json:"limit_amount"`
	SpentAmount  money.Amount `json:"spent_amount"`
	Percentage   float64      `json:"percentage"`
}

// MonthlyReport is the read-only per-month aggregate. It is returned to the
// caller, never cached.
type MonthlyReport struct {
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	TotalIncome   money.Amount    `json:"total_income"`
	TotalExpenses money.Amount    `json:"total_expenses"`
	NetBalance    money.Amount    `json:"net_balance"`
	TopCategories []BreakdownItem `json:"top_categories,omitempty"`
}

// PeriodFilter scopes the aggregate endpoints.
type PeriodFilter struct {
	Year  int
	Month time.Month
}

func (f PeriodFilter) Query() url.Values {
	q := url.Values{}

	if f.Year != 0 {
		q.Set("year", strconv.Itoa(f.Year))
	}

	if f.Month != 0 {
		q.Set("month", strconv.Itoa(int(f.Month)))
	}

	return q
}
