// Package notify turns domain events into alert records and drives the
// polling notification center. Alert creation here is a fire-and-forget side
// channel: failures are logged, never surfaced to the action that triggered
// them.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"centavo/internal/money"
	"centavo/internal/report"
)

// AlertCreator is the slice of the report store the trigger needs.
type AlertCreator interface {
	CreateAlert(ctx context.Context, params report.AlertParams) (*report.Alert, error)
}

// Trigger maps semantic events to fixed {title, message, type} alerts.
type Trigger struct {
	alerts AlertCreator
}

func NewTrigger(alerts AlertCreator) *Trigger {
	return &Trigger{alerts: alerts}
}

func (t *Trigger) notify(ctx context.Context, title, message string, kind report.AlertType) {
	_, err := t.alerts.CreateAlert(ctx, report.AlertParams{
		Title:     title,
		Message:   message,
		AlertType: kind,
	})
	if err != nil {
		slog.Warn("failed to create notification", "title", title, "error", err)
	}
}

func (t *Trigger) GoalCreated(ctx context.Context, goalName string) {
	t.notify(ctx, "Goal Created! 🎯",
		fmt.Sprintf("You've created the goal %q", goalName), report.AlertSuccess)
}

func (t *Trigger) GoalProgressUpdated(ctx context.Context, goalName string, amount money.Amount) {
	t.notify(ctx, "Progress Updated! 📈",
		fmt.Sprintf("Added $%s to %q", amount, goalName), report.AlertSuccess)
}

func (t *Trigger) GoalCompleted(ctx context.Context, goalName string) {
	t.notify(ctx, "Goal Completed! 🎉",
		fmt.Sprintf("Congratulations! You've completed %q", goalName), report.AlertSuccess)
}

func (t *Trigger) GoalDeleted(ctx context.Context, goalName string) {
	t.notify(ctx, "Goal Deleted",
		fmt.Sprintf("The goal %q has been removed", goalName), report.AlertInfo)
}

func (t *Trigger) AlertMarkedRead(ctx context.Context) {
	t.notify(ctx, "Alert Marked", "Alert marked as read", report.AlertInfo)
}

func (t *Trigger) AllAlertsMarkedRead(ctx context.Context, count int) {
	t.notify(ctx, "Alerts Cleared",
		fmt.Sprintf("%d alerts marked as read", count), report.AlertInfo)
}

func (t *Trigger) IncomeAdded(ctx context.Context, amount money.Amount, category string) {
	t.notify(ctx, "Income Added! 💰",
		fmt.Sprintf("+$%s from %s", amount, category), report.AlertSuccess)
}

func (t *Trigger) ExpenseRecorded(ctx context.Context, amount money.Amount, category string) {
	t.notify(ctx, "Expense Recorded! 💸",
		fmt.Sprintf("-$%s in %s", amount, category), report.AlertSuccess)
}

func (t *Trigger) BudgetWarning(ctx context.Context, category string, percentage int) {
	t.notify(ctx, "Budget Alert ⚠️",
		fmt.Sprintf("%s is at %d%% of budget", category, percentage), report.AlertTip)
}

func (t *Trigger) BudgetExceeded(ctx context.Context, category string, over money.Amount) {
	t.notify(ctx, "Budget Exceeded! 🚨",
		fmt.Sprintf("%s exceeded by $%s", category, over), report.AlertDanger)
}
