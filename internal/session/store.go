package session

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"reelvault/internal/logging"
)

// Store persists the catalog passphrase in a single named slot so repeat
// invocations can skip the prompt. The slot holds the passphrase in
// cleartext: the artifact it unlocks is what the encryption protects, and the
// accepted threat model is casual inspection of the published blob, not a
// compromised client. Logout destroys the slot.
type Store struct {
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

// NewStore creates a store rooted at the provided slot path. An empty path
// disables persistence (Save and Clear become no-ops, Get always misses).
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Store{
		path:   strings.TrimSpace(path),
		logger: logging.WithComponent(logger, "session"),
	}
	if s.path != "" {
		s.lock = flock.New(s.path + ".lock")
	}
	return s
}

// Save overwrites the slot unconditionally.
func (s *Store) Save(passphrase string) error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("ensure session directory: %w", err)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock session slot: %w", err)
	}
	defer s.lock.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(passphrase), 0o600); err != nil {
		return fmt.Errorf("write session slot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("commit session slot: %w", err)
	}

	s.logger.Debug("session credential saved", logging.String("path", s.path))
	return nil
}

// Get returns the stored passphrase. It never fails: a missing or unreadable
// slot reports absence.
func (s *Store) Get() (string, bool) {
	if s.path == "" {
		return "", false
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("session slot unreadable", logging.Error(err))
		}
		return "", false
	}
	return string(data), true
}

// Clear removes the slot. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	if s.path == "" {
		return nil
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock session slot: %w", err)
	}
	defer s.lock.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session slot: %w", err)
	}
	s.logger.Debug("session credential cleared")
	return nil
}
