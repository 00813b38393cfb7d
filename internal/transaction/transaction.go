package transaction

import (
	"net/url"

	"github.com/google/uuid"

	"centavo/internal/date"
	"centavo/internal/money"
)

// Type represents the kind of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Transaction mirrors a record owned by the financial service. Identity is
// assigned server-side; the client never mutates a record in place, it only
// replaces it wholesale with what the server returns.
type Transaction struct {
	ID          uuid.UUID    `json:"id"`
	Category    uuid.UUID    `json:"category"`
	Amount      money.Amount `json:"amount"`
	Date        date.Date    `json:"date"`
	Description string       `json:"description"`
	Currency    string       `json:"currency,omitempty"`
}

// CreateParams is the payload for creating or fully replacing a transaction.
type CreateParams struct {
	Category    uuid.UUID    `json:"category"`
	Amount      money.Amount `json:"amount"`
	Date        date.Date    `json:"date"`
	Description string       `json:"description"`
	Currency    string       `json:"currency,omitempty"`
}

// ListFilter narrows a list call. Zero-value fields are omitted.
type ListFilter struct {
	Category  *uuid.UUID
	StartDate *date.Date
	EndDate   *date.Date
}

// Query serializes the filter the way the service expects it.
func (f ListFilter) Query() url.Values {
	q := url.Values{}

	if f.Category != nil {
		q.Set("category", f.Category.String())
	}

	if f.StartDate != nil {
		q.Set("date_from", f.StartDate.String())
	}

	if f.EndDate != nil {
		q.Set("date_to", f.EndDate.String())
	}

	return q
}
