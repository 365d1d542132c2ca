package builder

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"reelvault/internal/catalog"
	"reelvault/internal/config"
	"reelvault/internal/envelope"
	"reelvault/internal/logging"
	"reelvault/internal/nameparse"
	"reelvault/internal/services/debrid"
	"reelvault/internal/services/tmdb"
)

// Builder assembles the encrypted catalog from the provider account:
// list torrents, parse names, enrich with TMDB metadata, seal, and write the
// base64 blob. An encrypted cache file makes repeat builds incremental.
type Builder struct {
	rd         *debrid.Client
	tmdb       tmdb.Searcher
	apiKey     string
	passphrase string
	outputPath string
	cachePath  string
	refresh    time.Duration
	logger     *slog.Logger
	now        func() time.Time
	httpClient *http.Client
}

// Summary reports what a build did.
type Summary struct {
	Items     int
	New       int
	Refreshed int
	FromCache int
}

// Option configures a Builder.
type Option func(*Builder)

// WithHTTPClient overrides the HTTP client for both provider APIs.
func WithHTTPClient(client *http.Client) Option {
	return func(b *Builder) { b.httpClient = client }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// New creates a builder from configuration. The provider API key and the
// catalog passphrase are required; TMDB enrichment is skipped when no TMDB
// key is configured.
func New(cfg *config.Config, passphrase string, logger *slog.Logger, opts ...Option) (*Builder, error) {
	if strings.TrimSpace(cfg.Debrid.APIKey) == "" {
		return nil, errors.New("debrid api key required (set debrid.api_key or RD_API_KEY)")
	}
	if passphrase == "" {
		return nil, errors.New("catalog passphrase required")
	}

	b := &Builder{
		apiKey:     cfg.Debrid.APIKey,
		passphrase: passphrase,
		outputPath: cfg.Build.OutputPath,
		cachePath:  cfg.Build.CachePath,
		refresh:    time.Duration(cfg.Build.RefreshHours) * time.Hour,
		logger:     logging.WithComponent(logger, "builder"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}

	var clientOpts []debrid.Option
	if b.httpClient != nil {
		clientOpts = append(clientOpts, debrid.WithHTTPClient(b.httpClient))
	}
	b.rd = debrid.NewClient(b.apiKey, cfg.Debrid.BaseURL, clientOpts...)

	if strings.TrimSpace(cfg.TMDB.APIKey) != "" {
		var tmdbOpts []tmdb.Option
		if b.httpClient != nil {
			tmdbOpts = append(tmdbOpts, tmdb.WithHTTPClient(b.httpClient))
		}
		client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, tmdbOpts...)
		if err != nil {
			return nil, err
		}
		b.tmdb = client
	}
	return b, nil
}

// Run executes the build pipeline and writes the encrypted catalog.
func (b *Builder) Run(ctx context.Context) (*Summary, error) {
	cache := b.loadCache()
	summary := &Summary{}

	torrents, err := b.rd.AllTorrents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list torrents: %w", err)
	}
	b.logger.Info("torrent listing fetched", logging.Int("count", len(torrents)))

	// Drop cache entries for torrents deleted upstream.
	current := make(map[string]struct{}, len(torrents))
	for _, t := range torrents {
		current[t.ID] = struct{}{}
	}
	for id := range cache.Torrents {
		if _, ok := current[id]; !ok {
			delete(cache.Torrents, id)
		}
	}

	items := make([]catalog.Item, 0, len(torrents))
	for _, t := range torrents {
		if t.Status != "downloaded" {
			continue
		}

		if cached, ok := cache.Torrents[t.ID]; ok && b.now().Sub(cached.FetchedAt) < b.refresh {
			items = append(items, cached.Entry)
			summary.FromCache++
			continue
		}

		entry, err := b.buildEntry(ctx, t, cache)
		if err != nil {
			b.logger.Warn("torrent info fetch failed",
				logging.String("torrent", t.ID),
				logging.Error(err))
			// Use the stale entry rather than dropping the item.
			if cached, ok := cache.Torrents[t.ID]; ok {
				items = append(items, cached.Entry)
				summary.FromCache++
			}
			continue
		}

		if _, ok := cache.Torrents[t.ID]; ok {
			summary.Refreshed++
		} else {
			summary.New++
		}
		items = append(items, *entry)
		cache.Torrents[t.ID] = cachedTorrent{FetchedAt: b.now(), Entry: *entry}
	}

	// Newest first.
	sort.SliceStable(items, func(i, j int) bool { return items[i].Added > items[j].Added })
	summary.Items = len(items)

	if err := b.saveCache(cache); err != nil {
		b.logger.Warn("build cache not saved", logging.Error(err))
	}

	if err := b.writeCatalog(items); err != nil {
		return nil, err
	}
	b.logger.Info("catalog written",
		logging.Int("items", summary.Items),
		logging.Int("new", summary.New),
		logging.Int("refreshed", summary.Refreshed))
	return summary, nil
}

func (b *Builder) buildEntry(ctx context.Context, t debrid.Torrent, cache *buildCache) (*catalog.Item, error) {
	info, err := b.rd.TorrentInfo(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	parsed := nameparse.ParseName(t.Filename)

	files := make([]nameparse.TorrentFile, 0, len(info.Files))
	for _, f := range info.Files {
		if f.Selected != 1 {
			continue
		}
		files = append(files, nameparse.TorrentFile{Path: f.Path, Bytes: f.Bytes, Selected: true})
	}
	episodes := nameparse.ParseEpisodes(files)
	isPack := len(episodes) > 1

	links := info.Links
	if isPack {
		links = alignLinks(info.Links, files, episodes)
	}

	entry := catalog.Item{
		ID:       t.ID,
		Filename: t.Filename,
		Title:    parsed.Title,
		Type:     parsed.Type,
		Year:     parsed.Year,
		Season:   parsed.Season,
		Episode:  parsed.Episode,
		Size:     t.Bytes,
		Added:    t.Added,
		Links:    links,
		IsPack:   isPack,
	}
	if isPack {
		entry.Episodes = episodes
	}

	entry.TMDB = b.enrich(ctx, parsed, cache)
	return &entry, nil
}

// alignLinks reorders a pack's links so position i corresponds to episodes[i].
// The provider returns one link per selected file in file order; episode
// parsing sorts by season and episode, so the links are permuted to match.
// Any count mismatch leaves the provider order untouched.
func alignLinks(links []string, files []nameparse.TorrentFile, episodes []catalog.Episode) []string {
	if len(links) != len(files) || len(episodes) > len(links) {
		return links
	}
	byPath := make(map[string]int, len(files))
	for i, f := range files {
		byPath[f.Path] = i
	}
	aligned := make([]string, 0, len(episodes))
	for _, ep := range episodes {
		i, ok := byPath[ep.Path]
		if !ok {
			return links
		}
		aligned = append(aligned, links[i])
	}
	return aligned
}

// enrich looks up TMDB metadata, memoizing lookups (misses included) in the
// build cache.
func (b *Builder) enrich(ctx context.Context, parsed nameparse.ParsedName, cache *buildCache) *catalog.Metadata {
	if b.tmdb == nil || parsed.Title == "" {
		return nil
	}

	key := strings.ToLower(parsed.Title) + "|" + strconv.Itoa(parsed.Year) + "|" + parsed.Type
	if meta, seen := cache.TMDB[key]; seen {
		return meta
	}

	var (
		resp *tmdb.Response
		err  error
	)
	if parsed.Type == catalog.TypeTV {
		resp, err = b.tmdb.SearchTV(ctx, parsed.Title, parsed.Year)
	} else {
		resp, err = b.tmdb.SearchMovie(ctx, parsed.Title, parsed.Year)
	}
	if err != nil {
		b.logger.Warn("tmdb search failed",
			logging.String("title", parsed.Title),
			logging.Error(err))
		return nil
	}

	var meta *catalog.Metadata
	if len(resp.Results) > 0 {
		r := resp.Results[0]
		meta = &catalog.Metadata{
			Title:    r.DisplayTitle(),
			Overview: r.Overview,
			Poster:   r.PosterURL(),
			Backdrop: r.BackdropURL(),
			Rating:   r.VoteAverage,
			Year:     r.Year(),
			Genres:   tmdb.GenreNames(r.GenreIDs),
		}
	}
	cache.TMDB[key] = meta
	return meta
}

func (b *Builder) writeCatalog(items []catalog.Item) error {
	cat := catalog.Catalog{
		Version: 1,
		Updated: b.now().UTC().Format(time.RFC3339),
		RDKey:   b.apiKey,
		Items:   items,
	}
	plaintext, err := json.Marshal(cat)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	sealed, err := envelope.Seal(string(plaintext), b.passphrase)
	if err != nil {
		return fmt.Errorf("seal catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(b.outputPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(sealed)
	if err := os.WriteFile(b.outputPath, []byte(encoded), 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}
