// Package storage persists the session record to the user's config
// directory so a login survives restarts.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"centavo/internal/auth"
)

// FileStore keeps the session in a single JSON file. It caches the last
// loaded or saved session so Token lookups do not hit the disk per request.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	session *auth.Session
}

// DefaultPath returns <user config dir>/centavo/session.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}

	return filepath.Join(dir, "centavo", "session.json"), nil
}

func New(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the session file. Returns auth.ErrNoSession when none exists.
func (f *FileStore) Load() (*auth.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.load()
}

func (f *FileStore) load() (*auth.Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, auth.ErrNoSession
		}

		return nil, fmt.Errorf("reading session file: %w", err)
	}

	var session auth.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parsing session file: %w", err)
	}

	f.session = &session
	copied := session

	return &copied, nil
}

// Save writes the session file with owner-only permissions.
func (f *FileStore) Save(session *auth.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}

	copied := *session
	f.session = &copied

	return nil
}

// Clear removes the session file. A missing file is not an error.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.session = nil

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}

	return nil
}

// Token returns the stored access token, or "" when logged out. It satisfies
// the API client's token provider so every request picks up whatever token is
// currently persisted.
func (f *FileStore) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.session == nil {
		if _, err := f.load(); err != nil {
			return ""
		}
	}

	return f.session.AccessToken
}
