// Package draft persists in-progress wizard submissions so a crash or
// restart does not lose a half-written study guide.
package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sahayak/sahayak-backend/internal/domain"
)

// schemaVersion is baked into the file name so an incompatible payload
// shape simply becomes a fresh draft instead of a decode failure.
const schemaVersion = 2

// The draft key is global per profile: starting a second subject overwrites
// the first draft. Known limitation, kept for parity with the web client.

// Draft is one saved wizard state: the full payload plus the step index
type Draft struct {
	Step    int                         `json:"step"`
	Payload domain.SubjectCreateRequest `json:"payload"`
}

// Store reads and writes the single draft file
type Store struct {
	path string
}

// NewStore creates a Store rooted at dir (usually the profile directory)
func NewStore(dir string) *Store {
	name := filepath.Join(dir, fmt.Sprintf("subject_draft_v%d.json", schemaVersion))
	return &Store{path: name}
}

// Load returns the saved draft, or nil when none exists
func (s *Store) Load() (*Draft, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		// Unreadable draft; discard rather than block the wizard
		return nil, nil
	}
	return &d, nil
}

// Save writes the draft; called after every committed edit
func (s *Store) Save(d *Draft) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Delete removes the draft; called after a successful submit
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
