// Package session holds the client's auth state: the bearer token and
// the logged-in user, persisted to a profile file between runs.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sahayak/sahayak-backend/internal/domain"
)

// Session is the persisted auth state
type Session struct {
	AccessToken string              `json:"access_token"`
	User        *domain.SessionUser `json:"user"`
}

// State tracks the hydration lifecycle. Gated views must not decide
// anything while the state is still Unknown.
type State int

const (
	StateUnknown State = iota
	StateResolved
)

// Store loads and saves the session file
type Store struct {
	path    string
	state   State
	current *Session
}

// NewStore creates a Store rooted at dir (usually the profile directory)
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, "session.json")}
}

// Hydrate reads the session file. A missing file resolves to a logged-out
// session; any other read error is returned and the state stays Unknown.
func (s *Store) Hydrate() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.current = nil
			s.state = StateResolved
			return nil
		}
		return err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// Corrupt session file; treat as logged out
		s.current = nil
		s.state = StateResolved
		return nil
	}

	s.current = &sess
	s.state = StateResolved
	return nil
}

// State returns the hydration state
func (s *Store) State() State {
	return s.state
}

// Current returns the active session, or nil when logged out or unresolved
func (s *Store) Current() *Session {
	if s.state != StateResolved {
		return nil
	}
	return s.current
}

// Token returns the bearer token, or "" when not logged in
func (s *Store) Token() string {
	if sess := s.Current(); sess != nil {
		return sess.AccessToken
	}
	return ""
}

// IsAdmin reports whether the resolved session belongs to an admin
func (s *Store) IsAdmin() bool {
	sess := s.Current()
	return sess != nil && sess.User.IsAdmin()
}

// Save persists a new session (login)
func (s *Store) Save(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return err
	}
	s.current = sess
	s.state = StateResolved
	return nil
}

// Clear removes the session file (logout)
func (s *Store) Clear() error {
	s.current = nil
	s.state = StateResolved
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
