package view

import (
	"context"
	"fmt"
	"time"

	"centavo/internal/date"
	"centavo/internal/money"
)

const apiTimeout = 15 * time.Second

// FormatAmount formats an amount for display, e.g. "$12.50".
func FormatAmount(a money.Amount) string {
	return fmt.Sprintf("$%s", a)
}

// FormatDate formats a civil date as YYYY-MM-DD.
func FormatDate(d date.Date) string {
	if d.IsZero() {
		return "-"
	}

	return d.String()
}

// APICtx returns a context with a standard timeout for service calls.
func APICtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}
