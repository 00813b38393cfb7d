package transaction

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"centavo/internal/money"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=transaction

// API is the slice of the financial service the transaction store talks to.
type API interface {
	ListIncomes(ctx context.Context, filter ListFilter) ([]Transaction, error)
	CreateIncome(ctx context.Context, params CreateParams) (*Transaction, error)
	UpdateIncome(ctx context.Context, id uuid.UUID, params CreateParams) (*Transaction, error)
	DeleteIncome(ctx context.Context, id uuid.UUID) error

	ListExpenses(ctx context.Context, filter ListFilter) ([]Transaction, error)
	CreateExpense(ctx context.Context, params CreateParams) (*Transaction, error)
	UpdateExpense(ctx context.Context, id uuid.UUID, params CreateParams) (*Transaction, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error
}

// InsufficientBalanceError rejects an expense that exceeds the current net
// balance. It is raised before any network call is made.
type InsufficientBalanceError struct {
	Available money.Amount
	Attempted money.Amount
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: available %s, attempted %s",
		e.Available, e.Attempted)
}

// Store caches the income and expense collections for the filters last
// fetched. Mutations splice the server's returned record into the cache so
// the cache stays consistent with what a re-fetch would return.
type Store struct {
	api API

	mu       sync.RWMutex
	incomes  []Transaction
	expenses []Transaction
	loading  bool
	err      string
}

func NewStore(api API) *Store {
	return &Store{api: api}
}

// FetchIncomes replaces the cached income collection.
func (s *Store) FetchIncomes(ctx context.Context, filter ListFilter) error {
	s.setLoading()

	incomes, err := s.api.ListIncomes(ctx, filter)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.incomes = incomes
	s.loading = false
	s.mu.Unlock()

	return nil
}

// CreateIncome creates the record and prepends the server's copy, newest
// first.
func (s *Store) CreateIncome(ctx context.Context, params CreateParams) (*Transaction, error) {
	s.setLoading()

	created, err := s.api.CreateIncome(ctx, params)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	s.incomes = append([]Transaction{*created}, s.incomes...)
	s.loading = false
	s.mu.Unlock()

	return created, nil
}

// UpdateIncome replaces the matching cached record with the server's copy.
func (s *Store) UpdateIncome(ctx context.Context, id uuid.UUID, params CreateParams) (*Transaction, error) {
	s.setLoading()

	updated, err := s.api.UpdateIncome(ctx, id, params)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	replaceByID(s.incomes, id, *updated)
	s.loading = false
	s.mu.Unlock()

	return updated, nil
}

// DeleteIncome removes the record remotely and from the cache.
func (s *Store) DeleteIncome(ctx context.Context, id uuid.UUID) error {
	s.setLoading()

	if err := s.api.DeleteIncome(ctx, id); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.incomes = removeByID(s.incomes, id)
	s.loading = false
	s.mu.Unlock()

	return nil
}

// FetchExpenses replaces the cached expense collection.
func (s *Store) FetchExpenses(ctx context.Context, filter ListFilter) error {
	s.setLoading()

	expenses, err := s.api.ListExpenses(ctx, filter)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.expenses = expenses
	s.loading = false
	s.mu.Unlock()

	return nil
}

// CreateExpense creates an expense after checking it against the current net
// balance. An expense larger than the available balance is rejected locally
// with *InsufficientBalanceError and no network call.
func (s *Store) CreateExpense(ctx context.Context, params CreateParams) (*Transaction, error) {
	available := s.NetBalance()
	if params.Amount.GreaterThan(available) {
		return nil, &InsufficientBalanceError{Available: available, Attempted: params.Amount}
	}

	s.setLoading()

	created, err := s.api.CreateExpense(ctx, params)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	s.expenses = append([]Transaction{*created}, s.expenses...)
	s.loading = false
	s.mu.Unlock()

	return created, nil
}

// UpdateExpense replaces the matching cached record with the server's copy.
func (s *Store) UpdateExpense(ctx context.Context, id uuid.UUID, params CreateParams) (*Transaction, error) {
	s.setLoading()

	updated, err := s.api.UpdateExpense(ctx, id, params)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	replaceByID(s.expenses, id, *updated)
	s.loading = false
	s.mu.Unlock()

	return updated, nil
}

// DeleteExpense removes the record remotely and from the cache.
func (s *Store) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	s.setLoading()

	if err := s.api.DeleteExpense(ctx, id); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.expenses = removeByID(s.expenses, id)
	s.loading = false
	s.mu.Unlock()

	return nil
}

// Incomes returns a copy of the cached income collection.
func (s *Store) Incomes() []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Transaction(nil), s.incomes...)
}

// Expenses returns a copy of the cached expense collection.
func (s *Store) Expenses() []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Transaction(nil), s.expenses...)
}

// TotalIncome sums the cached incomes. Recomputed on every call.
func (s *Store) TotalIncome() money.Amount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return money.Sum(s.incomes, func(t Transaction) money.Amount { return t.Amount })
}

// TotalExpenses sums the cached expenses. Recomputed on every call.
func (s *Store) TotalExpenses() money.Amount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return money.Sum(s.expenses, func(t Transaction) money.Amount { return t.Amount })
}

// NetBalance is total income minus total expenses.
func (s *Store) NetBalance() money.Amount {
	return s.TotalIncome().Sub(s.TotalExpenses())
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

func replaceByID(list []Transaction, id uuid.UUID, item Transaction) {
	for i := range list {
		if list[i].ID == id {
			list[i] = item
			return
		}
	}
}

func removeByID(list []Transaction, id uuid.UUID) []Transaction {
	kept := list[:0]

	for _, t := range list {
		if t.ID != id {
			kept = append(kept, t)
		}
	}

	return kept
}
