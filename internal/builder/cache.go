package builder

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"reelvault/internal/catalog"
	"reelvault/internal/envelope"
	"reelvault/internal/logging"
)

// cachedTorrent is one memoized catalog entry with its fetch time.
type cachedTorrent struct {
	FetchedAt time.Time    `json:"fetched_at"`
	Entry     catalog.Item `json:"entry"`
}

// buildCache memoizes per-torrent entries and TMDB lookups between builds.
// TMDB misses are stored as nulls so absent titles are not re-queried.
type buildCache struct {
	Torrents map[string]cachedTorrent     `json:"torrents"`
	TMDB     map[string]*catalog.Metadata `json:"tmdb"`
}

func newBuildCache() *buildCache {
	return &buildCache{
		Torrents: make(map[string]cachedTorrent),
		TMDB:     make(map[string]*catalog.Metadata),
	}
}

// loadCache reads the encrypted cache file. Any failure (missing file,
// different passphrase, corruption) starts a fresh cache; the cache is an
// optimization, never a source of truth.
func (b *Builder) loadCache() *buildCache {
	if b.cachePath == "" {
		return newBuildCache()
	}
	data, err := os.ReadFile(b.cachePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			b.logger.Warn("build cache unreadable", logging.Error(err))
		}
		return newBuildCache()
	}
	plaintext, err := envelope.Open(data, b.passphrase)
	if err != nil {
		b.logger.Warn("build cache rejected, starting fresh", logging.Error(err))
		return newBuildCache()
	}
	cache := newBuildCache()
	if err := json.Unmarshal([]byte(plaintext), cache); err != nil {
		b.logger.Warn("build cache corrupt, starting fresh", logging.Error(err))
		return newBuildCache()
	}
	if cache.Torrents == nil {
		cache.Torrents = make(map[string]cachedTorrent)
	}
	if cache.TMDB == nil {
		cache.TMDB = make(map[string]*catalog.Metadata)
	}
	return cache
}

// saveCache seals the cache with the catalog passphrase and writes it
// atomically.
func (b *Builder) saveCache(cache *buildCache) error {
	if b.cachePath == "" {
		return nil
	}
	plaintext, err := json.Marshal(cache)
	if err != nil {
		return fmt.Errorf("encode build cache: %w", err)
	}
	sealed, err := envelope.Seal(string(plaintext), b.passphrase)
	if err != nil {
		return fmt.Errorf("seal build cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(b.cachePath), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	tmp := b.cachePath + ".tmp"
	if err := os.WriteFile(tmp, sealed, 0o600); err != nil {
		return fmt.Errorf("write build cache: %w", err)
	}
	if err := os.Rename(tmp, b.cachePath); err != nil {
		return fmt.Errorf("write build cache: %w", err)
	}
	return nil
}
