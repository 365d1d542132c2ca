package debrid

import (
	"context"
	"log/slog"
	"sync"

	"reelvault/internal/logging"
)

// Unrestrictor is the subset of client functionality the resolver needs.
type Unrestrictor interface {
	Unrestrict(ctx context.Context, link string) (*UnrestrictResult, error)
}

// Resolver memoizes link unrestriction. A settled cache entry is permanent
// for the resolver's lifetime: the catalog's link set is bounded and a
// resolved mapping does not change meaning, so there is no eviction. Failures
// are never cached; a retry issues a fresh call.
//
// Concurrent resolutions of the same link are collapsed to a single provider
// call; later callers wait for the first one's outcome.
type Resolver struct {
	client Unrestrictor
	logger *slog.Logger

	mu       sync.Mutex
	cache    map[string]string
	inflight map[string]*inflightCall
}

type inflightCall struct {
	done chan struct{}
	url  string
	err  error
}

// NewResolver creates a resolver over the provided client.
func NewResolver(client Unrestrictor, logger *slog.Logger) *Resolver {
	return &Resolver{
		client:   client,
		logger:   logging.WithComponent(logger, "resolver"),
		cache:    make(map[string]string),
		inflight: make(map[string]*inflightCall),
	}
}

// Resolve turns an opaque provider link into a stream URL. Cache hits return
// immediately with no network access.
func (r *Resolver) Resolve(ctx context.Context, rawLink string) (string, error) {
	r.mu.Lock()
	if streamURL, ok := r.cache[rawLink]; ok {
		r.mu.Unlock()
		return streamURL, nil
	}
	if call, ok := r.inflight[rawLink]; ok {
		r.mu.Unlock()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-call.done:
		}
		return call.url, call.err
	}
	call := &inflightCall{done: make(chan struct{})}
	r.inflight[rawLink] = call
	r.mu.Unlock()

	result, err := r.client.Unrestrict(ctx, rawLink)

	r.mu.Lock()
	delete(r.inflight, rawLink)
	if err != nil {
		call.err = err
	} else {
		call.url = result.Download
		r.cache[rawLink] = call.url
	}
	r.mu.Unlock()
	close(call.done)

	if err != nil {
		r.logger.Warn("link resolution failed", logging.Error(err))
		return "", err
	}
	r.logger.Debug("link resolved", logging.String("filename", result.Filename))
	return call.url, nil
}

// CachedCount reports the number of settled cache entries.
func (r *Resolver) CachedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}
