package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=auth

// API is the slice of the financial service the auth store talks to.
type API interface {
	Register(ctx context.Context, params RegisterParams) (*Session, error)
	Login(ctx context.Context, creds Credentials) (*Session, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*User, error)
	UpdateProfile(ctx context.Context, params ProfileParams) (*User, error)
}

// Storage persists the session across restarts.
type Storage interface {
	Load() (*Session, error)
	Save(session *Session) error
	Clear() error
}

// Store owns the client's session state. It is the only writer of the durable
// session record. Persisting the session and updating the in-memory copy are
// two separate steps; a crash between them leaves the two inconsistent until
// the next login.
type Store struct {
	api     API
	storage Storage

	mu          sync.RWMutex
	session     *Session
	initialized bool
	loading     bool
	err         string
}

func NewStore(api API, storage Storage) *Store {
	return &Store{api: api, storage: storage}
}

// Initialize hydrates the session from durable storage. It is synchronous,
// idempotent and safe to call more than once; only the first call reads the
// storage.
func (s *Store) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return
	}

	s.initialized = true

	session, err := s.storage.Load()
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			slog.Warn("failed to load stored session", "error", err)
		}

		return
	}

	s.session = session
}

// Register creates an account and establishes the returned session.
func (s *Store) Register(ctx context.Context, params RegisterParams) (*Session, error) {
	return s.establish(func() (*Session, error) {
		return s.api.Register(ctx, params)
	})
}

// Login authenticates and establishes the returned session.
func (s *Store) Login(ctx context.Context, creds Credentials) (*Session, error) {
	return s.establish(func() (*Session, error) {
		return s.api.Login(ctx, creds)
	})
}

func (s *Store) establish(call func() (*Session, error)) (*Session, error) {
	s.setLoading()

	session, err := call()
	if err != nil {
		s.fail(err)
		return nil, err
	}

	if err := s.storage.Save(session); err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	s.session = session
	s.loading = false
	s.mu.Unlock()

	return session, nil
}

// Logout notifies the server best-effort, then always clears the local
// session. It cannot fail from the caller's point of view.
func (s *Store) Logout(ctx context.Context) {
	s.setLoading()

	if err := s.api.Logout(ctx); err != nil {
		slog.Warn("server logout failed, clearing local session anyway", "error", err)
	}

	if err := s.storage.Clear(); err != nil {
		slog.Warn("failed to clear stored session", "error", err)
	}

	s.mu.Lock()
	s.session = nil
	s.loading = false
	s.err = ""
	s.mu.Unlock()
}

// Profile refreshes the user record from the server.
func (s *Store) Profile(ctx context.Context) (*User, error) {
	s.setLoading()

	user, err := s.api.Profile(ctx)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.storeUser(*user)

	return user, nil
}

// UpdateProfile sends profile changes and stores the returned record.
func (s *Store) UpdateProfile(ctx context.Context, params ProfileParams) (*User, error) {
	s.setLoading()

	user, err := s.api.UpdateProfile(ctx, params)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.storeUser(*user)

	return user, nil
}

func (s *Store) storeUser(user User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false

	if s.session == nil {
		return
	}

	updated := *s.session
	updated.User = user

	if err := s.storage.Save(&updated); err != nil {
		slog.Warn("failed to persist updated profile", "error", err)
	}

	s.session = &updated
}

// Authenticated reports whether a session exists whose access token has not
// visibly expired. Tokens without a readable exp claim count as valid.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil || s.session.AccessToken == "" {
		return false
	}

	if expiry, ok := tokenExpiry(s.session.AccessToken); ok {
		return time.Now().Before(expiry)
	}

	return true
}

// Session returns a copy of the current session, or nil.
func (s *Store) Session() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil
	}

	session := *s.session

	return &session
}

// User returns the current user profile, or nil when logged out.
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil
	}

	user := s.session.User

	return &user
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
