package debrid

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultBaseURL is the Real-Debrid REST endpoint.
const DefaultBaseURL = "https://api.real-debrid.com/rest/1.0"

const torrentsPageSize = 100

// Errors returned by provider calls.
var (
	// ErrMissingCredential indicates no API token was available. It is
	// returned before any network traffic.
	ErrMissingCredential = errors.New("debrid credential missing")
	// ErrMalformedResponse indicates a success response without the
	// expected download URL field.
	ErrMalformedResponse = errors.New("malformed provider response")
)

// ProviderError carries a non-success provider status and a bounded slice of
// the response body.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned %d: %s", e.StatusCode, e.Body)
}

// Torrent is one entry from the provider's torrent listing.
type Torrent struct {
	ID       string   `json:"id"`
	Filename string   `json:"filename"`
	Bytes    int64    `json:"bytes"`
	Status   string   `json:"status"`
	Added    string   `json:"added"`
	Links    []string `json:"links"`
}

// TorrentFile is one file inside a torrent.
type TorrentFile struct {
	ID       int    `json:"id"`
	Path     string `json:"path"`
	Bytes    int64  `json:"bytes"`
	Selected int    `json:"selected"`
}

// TorrentDetail is the per-torrent info payload including the file list.
type TorrentDetail struct {
	Torrent
	Files []TorrentFile `json:"files"`
}

// UnrestrictResult is the payload of a successful link unrestriction.
type UnrestrictResult struct {
	Filename string `json:"filename"`
	Filesize int64  `json:"filesize"`
	Download string `json:"download"`
	MimeType string `json:"mimeType"`
}

// Client provides access to the Real-Debrid API. Listing calls are rate
// limited and retry on throttling; Unrestrict is a deliberate single attempt
// so the caller decides retry policy.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	rateLimit  time.Duration
	maxRetries int

	mu       sync.Mutex
	lastCall time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRateLimit overrides the minimum delay between listing calls.
func WithRateLimit(d time.Duration) Option {
	return func(c *Client) { c.rateLimit = d }
}

// NewClient creates a provider client. An empty token is allowed; calls that
// need it fail with ErrMissingCredential.
func NewClient(token, baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		token:      strings.TrimSpace(token),
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		rateLimit:  300 * time.Millisecond,
		maxRetries: 4,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasCredential reports whether the client holds an API token.
func (c *Client) HasCredential() bool { return c.token != "" }

// Torrents fetches one page of the torrent listing.
func (c *Client) Torrents(ctx context.Context, page int) ([]Torrent, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(torrentsPageSize))

	var torrents []Torrent
	if err := c.getJSON(ctx, "/torrents?"+query.Encode(), &torrents); err != nil {
		return nil, fmt.Errorf("list torrents page %d: %w", page, err)
	}
	return torrents, nil
}

// AllTorrents walks the paginated listing until a short page.
func (c *Client) AllTorrents(ctx context.Context) ([]Torrent, error) {
	var all []Torrent
	for page := 1; ; page++ {
		batch, err := c.Torrents(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < torrentsPageSize {
			return all, nil
		}
	}
}

// TorrentInfo fetches detailed info for a single torrent, file list included.
func (c *Client) TorrentInfo(ctx context.Context, id string) (*TorrentDetail, error) {
	var detail TorrentDetail
	if err := c.getJSON(ctx, "/torrents/info/"+url.PathEscape(id), &detail); err != nil {
		return nil, fmt.Errorf("torrent info %s: %w", id, err)
	}
	return &detail, nil
}

// Unrestrict exchanges an opaque provider link for a direct download URL.
// Exactly one request is issued; failures surface to the caller unretried.
func (c *Client) Unrestrict(ctx context.Context, link string) (*UnrestrictResult, error) {
	if c.token == "" {
		return nil, ErrMissingCredential
	}

	form := url.Values{}
	form.Set("link", link)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/unrestrict/link", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build unrestrict request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute unrestrict request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var result UnrestrictResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if result.Download == "" {
		return nil, fmt.Errorf("%w: missing download field", ErrMalformedResponse)
	}
	return &result, nil
}

// getJSON performs a rate-limited GET with backoff on throttling.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if c.token == "" {
		return ErrMissingCredential
	}

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if err := c.waitTurn(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("execute request: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if err := sleepCtx(ctx, backoff(attempt)); err != nil {
				return err
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			resp.Body.Close()
			return &ProviderError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("rate limited after %d attempts", c.maxRetries)
}

func (c *Client) waitTurn(ctx context.Context) error {
	c.mu.Lock()
	wait := c.rateLimit - time.Since(c.lastCall)
	c.lastCall = time.Now().Add(wait)
	c.mu.Unlock()

	if wait <= 0 {
		return nil
	}
	return sleepCtx(ctx, wait)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func backoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt+1)) * time.Second
}
