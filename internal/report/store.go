package report

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=report

// API is the slice of the financial service the report store talks to.
type API interface {
	ListAlerts(ctx context.Context, filter AlertFilter) ([]Alert, error)
	ListUnreadAlerts(ctx context.Context) ([]Alert, error)
	CreateAlert(ctx context.Context, params AlertParams) (*Alert, error)
	MarkAlertRead(ctx context.Context, id uuid.UUID) (*Alert, error)
	MarkAllAlertsRead(ctx context.Context) error

	Summary(ctx context.Context, filter PeriodFilter) (*Summary, error)
	Breakdown(ctx context.Context, filter PeriodFilter) ([]BreakdownItem, error)
	BudgetStatus(ctx context.Context) ([]BudgetStatusItem, error)
	MonthlyReport(ctx context.Context, year int, month time.Month) (*MonthlyReport, error)
}

// Store caches alerts and the dashboard aggregates.
//
// alerts and unreadAlerts are parallel collections fetched by different
// endpoints. Mutating one does not re-derive the other; both are patched
// independently by id on mark-read.
type Store struct {
	api API

	mu           sync.RWMutex
	alerts       []Alert
	unreadAlerts []Alert
	summary      *Summary
	breakdown    []BreakdownItem
	budgetStatus []BudgetStatusItem
	loading      bool
	err          string
}

func NewStore(api API) *Store {
	return &Store{api: api}
}

func (s *Store) FetchAlerts(ctx context.Context, filter AlertFilter) error {
	s.setLoading()

	alerts, err := s.api.ListAlerts(ctx, filter)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.alerts = alerts
	s.loading = false
	s.mu.Unlock()

	return nil
}

// FetchUnreadAlerts replaces the server-filtered unread collection.
func (s *Store) FetchUnreadAlerts(ctx context.Context) error {
	s.setLoading()

	unread, err := s.api.ListUnreadAlerts(ctx)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.unreadAlerts = unread
	s.loading = false
	s.mu.Unlock()

	return nil
}

func (s *Store) CreateAlert(ctx context.Context, params AlertParams) (*Alert, error) {
	s.setLoading()

	created, err := s.api.CreateAlert(ctx, params)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	s.alerts = append([]Alert{*created}, s.alerts...)
	s.loading = false
	s.mu.Unlock()

	return created, nil
}

// MarkAlertAsRead patches both cached collections independently: the general
// list gets the server's returned record, the unread list drops the id.
func (s *Store) MarkAlertAsRead(ctx context.Context, id uuid.UUID) (*Alert, error) {
	updated, err := s.api.MarkAlertRead(ctx, id)
	if err != nil {
		s.mu.Lock()
		s.err = err.Error()
		s.mu.Unlock()

		return nil, err
	}

	s.mu.Lock()
	for i := range s.alerts {
		if s.alerts[i].ID == id {
			s.alerts[i] = *updated
			break
		}
	}

	kept := s.unreadAlerts[:0]
	for _, a := range s.unreadAlerts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.unreadAlerts = kept
	s.mu.Unlock()

	return updated, nil
}

// MarkAllAlertsAsRead issues the bulk call, then optimistically flips every
// cached alert and empties the unread list without per-item confirmation.
func (s *Store) MarkAllAlertsAsRead(ctx context.Context) error {
	if err := s.api.MarkAllAlertsRead(ctx); err != nil {
		s.mu.Lock()
		s.err = err.Error()
		s.mu.Unlock()

		return err
	}

	s.mu.Lock()
	for i := range s.alerts {
		s.alerts[i].IsRead = true
	}
	s.unreadAlerts = nil
	s.mu.Unlock()

	return nil
}

func (s *Store) FetchSummary(ctx context.Context, filter PeriodFilter) error {
	s.setLoading()

	summary, err := s.api.Summary(ctx, filter)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.summary = summary
	s.loading = false
	s.mu.Unlock()

	return nil
}

func (s *Store) FetchBreakdown(ctx context.Context, filter PeriodFilter) error {
	s.setLoading()

	breakdown, err := s.api.Breakdown(ctx, filter)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.breakdown = breakdown
	s.loading = false
	s.mu.Unlock()

	return nil
}

func (s *Store) FetchBudgetStatus(ctx context.Context) error {
	s.setLoading()

	status, err := s.api.BudgetStatus(ctx)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.budgetStatus = status
	s.loading = false
	s.mu.Unlock()

	return nil
}

// FetchMonthlyReport returns the month's aggregate without caching it.
func (s *Store) FetchMonthlyReport(ctx context.Context, year int, month time.Month) (*MonthlyReport, error) {
	s.setLoading()

	monthly, err := s.api.MonthlyReport(ctx, year, month)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()

	return monthly, nil
}

// Alerts returns a copy of the cached general alert collection.
func (s *Store) Alerts() []Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Alert(nil), s.alerts...)
}

// UnreadAlerts returns a copy of the server-filtered unread collection.
func (s *Store) UnreadAlerts() []Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Alert(nil), s.unreadAlerts...)
}

func (s *Store) Summary() *Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.summary == nil {
		return nil
	}

	summary := *s.summary

	return &summary
}

func (s *Store) Breakdown() []BreakdownItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]BreakdownItem(nil), s.breakdown...)
}

func (s *Store) BudgetStatus() []BudgetStatusItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]BudgetStatusItem(nil), s.budgetStatus...)
}

// UnreadCount counts unread alerts in the general collection, not the
// separately fetched unread list.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0

	for _, a := range s.alerts {
		if !a.IsRead {
			count++
		}
	}

	return count
}

// AlertsByType filters the general collection by type.
func (s *Store) AlertsByType(t AlertType) []Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Alert

	for _, a := range s.alerts {
		if a.AlertType == t {
			out = append(out, a)
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
