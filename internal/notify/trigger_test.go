package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centavo/internal/money"
	"centavo/internal/notify"
	"centavo/internal/report"
)

type captureCreator struct {
	mu     sync.Mutex
	params []report.AlertParams
	err    error
}

func (c *captureCreator) CreateAlert(_ context.Context, params report.AlertParams) (*report.Alert, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err != nil {
		return nil, c.err
	}

	c.params = append(c.params, params)

	return &report.Alert{
		ID:        uuid.New(),
		Title:     params.Title,
		Message:   params.Message,
		AlertType: params.AlertType,
	}, nil
}

func (c *captureCreator) last(t *testing.T) report.AlertParams {
	t.Helper()

	c.mu.Lock()
	defer c.mu.Unlock()

	require.NotEmpty(t, c.params)

	return c.params[len(c.params)-1]
}

func TestTrigger_GoalEvents(t *testing.T) {
	creator := &captureCreator{}
	trigger := notify.NewTrigger(creator)
	ctx := context.Background()

	trigger.GoalCreated(ctx, "Emergency Fund")
	got := creator.last(t)
	assert.Equal(t, "Goal Created! 🎯", got.Title)
	assert.Equal(t, `You've created the goal "Emergency Fund"`, got.Message)
	assert.Equal(t, report.AlertSuccess, got.AlertType)

	trigger.GoalProgressUpdated(ctx, "Emergency Fund", money.FromFloat(50))
	got = creator.last(t)
	assert.Equal(t, "Progress Updated! 📈", got.Title)
	assert.Equal(t, `Added $50.00 to "Emergency Fund"`, got.Message)

	trigger.GoalCompleted(ctx, "Emergency Fund")
	got = creator.last(t)
	assert.Equal(t, "Goal Completed! 🎉", got.Title)
	assert.Equal(t, report.AlertSuccess, got.AlertType)

	trigger.GoalDeleted(ctx, "Emergency Fund")
	got = creator.last(t)
	assert.Equal(t, "Goal Deleted", got.Title)
	assert.Equal(t, report.AlertInfo, got.AlertType)
}

func TestTrigger_TransactionEvents(t *testing.T) {
	creator := &captureCreator{}
	trigger := notify.NewTrigger(creator)
	ctx := context.Background()

	trigger.IncomeAdded(ctx, money.FromFloat(1200), "Salary")
	got := creator.last(t)
	assert.Equal(t, "Income Added! 💰", got.Title)
	assert.Equal(t, "+$1200.00 from Salary", got.Message)
	assert.Equal(t, report.AlertSuccess, got.AlertType)

	trigger.ExpenseRecorded(ctx, money.FromFloat(35.90), "Groceries")
	got = creator.last(t)
	assert.Equal(t, "Expense Recorded! 💸", got.Title)
	assert.Equal(t, "-$35.90 in Groceries", got.Message)
}

func TestTrigger_BudgetEvents(t *testing.T) {
	creator := &captureCreator{}
	trigger := notify.NewTrigger(creator)
	ctx := context.Background()

	trigger.BudgetWarning(ctx, "Groceries", 85)
	got := creator.last(t)
	assert.Equal(t, "Budget Alert ⚠️", got.Title)
	assert.Equal(t, "Groceries is at 85% of budget", got.Message)
	assert.Equal(t, report.AlertTip, got.AlertType)

	trigger.BudgetExceeded(ctx, "Groceries", money.FromFloat(23.45))
	got = creator.last(t)
	assert.Equal(t, "Budget Exceeded! 🚨", got.Title)
	assert.Equal(t, "Groceries exceeded by $23.45", got.Message)
	assert.Equal(t, report.AlertDanger, got.AlertType)
}

func TestTrigger_CreateFailureIsSwallowed(t *testing.T) {
	creator := &captureCreator{err: errors.New("service down")}
	trigger := notify.NewTrigger(creator)

	// Must not panic or surface the error.
	trigger.GoalCreated(context.Background(), "Trip")

	creator.mu.Lock()
	defer creator.mu.Unlock()
	assert.Empty(t, creator.params)
}
