package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"reelvault/internal/catalog"
	"reelvault/internal/config"
	"reelvault/internal/envelope"
	"reelvault/internal/logging"
	"reelvault/internal/services/debrid"
	"reelvault/internal/session"
)

// Session errors.
var (
	// ErrNoSavedSession indicates the passphrase slot is empty; the caller
	// must log in interactively.
	ErrNoSavedSession = errors.New("no saved session")
	// ErrNotLoggedIn indicates no catalog is loaded.
	ErrNotLoggedIn = errors.New("not logged in")
)

// Session is the top-level controller owning the decrypted catalog, its
// search index, the passphrase slot, and the link resolver. State is replaced
// atomically on login and dropped on logout, so a search never observes a
// catalog without its matching index.
type Session struct {
	source     string
	debridBase string
	store      *session.Store
	httpClient *http.Client
	logger     *slog.Logger

	mu       sync.RWMutex
	cat      *catalog.Catalog
	index    []string
	resolver *debrid.Resolver
}

// Option configures a Session.
type Option func(*Session)

// WithHTTPClient overrides the HTTP client used for catalog fetches and link
// resolution.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Session) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// New creates a session controller from configuration. The store owns the
// passphrase slot; pass a store with an empty path to disable persistence.
func New(cfg *config.Config, store *session.Store, logger *slog.Logger, opts ...Option) *Session {
	s := &Session{
		source:     cfg.Library.URL,
		debridBase: cfg.Debrid.BaseURL,
		store:      store,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logging.WithComponent(logger, "library"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open fetches and decrypts the catalog, rebuilds the search index, wires a
// resolver with the catalog's embedded credential, and saves the passphrase
// slot. Decryption failures pass through as envelope.ErrAuthentication or
// envelope.ErrMalformed.
func (s *Session) Open(ctx context.Context, passphrase string) error {
	raw, err := s.fetchBlob(ctx)
	if err != nil {
		return err
	}

	plaintext, err := envelope.Open(raw, passphrase)
	if err != nil {
		return err
	}

	cat, err := catalog.Decode([]byte(plaintext))
	if err != nil {
		return err
	}
	index := catalog.BuildIndex(cat)
	client := debrid.NewClient(cat.RDKey, s.debridBase, debrid.WithHTTPClient(s.httpClient))
	resolver := debrid.NewResolver(client, s.logger)

	s.mu.Lock()
	s.cat = cat
	s.index = index
	s.resolver = resolver
	s.mu.Unlock()

	if err := s.store.Save(passphrase); err != nil {
		s.logger.Warn("session credential not persisted", logging.Error(err))
	}

	s.logger.Info("catalog opened",
		logging.Int("items", len(cat.Items)),
		logging.String("updated", cat.Updated),
		logging.Bool("credential", cat.RDKey != ""))
	return nil
}

// Resume attempts a silent login from the passphrase slot. A stale credential
// (authentication failure) clears the slot so the next attempt falls back to
// manual login.
func (s *Session) Resume(ctx context.Context) error {
	passphrase, ok := s.store.Get()
	if !ok {
		return ErrNoSavedSession
	}
	if err := s.Open(ctx, passphrase); err != nil {
		if errors.Is(err, envelope.ErrAuthentication) {
			if clearErr := s.store.Clear(); clearErr != nil {
				s.logger.Warn("stale session credential not cleared", logging.Error(clearErr))
			}
			return fmt.Errorf("saved session rejected: %w", err)
		}
		return err
	}
	return nil
}

// Logout clears the passphrase slot and drops the decrypted state.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.cat = nil
	s.index = nil
	s.resolver = nil
	s.mu.Unlock()
	return s.store.Clear()
}

// Catalog returns the currently loaded catalog, or nil before login.
func (s *Session) Catalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cat
}

// Search applies the type filter and free-text query against the current
// index.
func (s *Session) Search(typeFilter, query string) ([]catalog.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cat == nil {
		return nil, ErrNotLoggedIn
	}
	return catalog.ApplyFilters(s.cat, s.index, typeFilter, query), nil
}

// Resolve turns an item's raw link into a stream URL through the memoizing
// resolver.
func (s *Session) Resolve(ctx context.Context, rawLink string) (string, error) {
	s.mu.RLock()
	resolver := s.resolver
	s.mu.RUnlock()
	if resolver == nil {
		return "", ErrNotLoggedIn
	}
	return resolver.Resolve(ctx, rawLink)
}
