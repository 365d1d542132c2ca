package library

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Errors surfaced by catalog loading.
var (
	// ErrFetchFailed wraps transport problems retrieving the blob. It is
	// surfaced at login time and not retried automatically.
	ErrFetchFailed = errors.New("catalog fetch failed")
	// ErrNoSource indicates no library location is configured.
	ErrNoSource = errors.New("no library source configured")
)

// fetchBlob retrieves the base64-wrapped envelope from an http(s) URL or a
// local file and returns the raw envelope bytes.
func (s *Session) fetchBlob(ctx context.Context) ([]byte, error) {
	source := strings.TrimSpace(s.source)
	if source == "" {
		return nil, ErrNoSource
	}

	var encoded []byte
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: build request: %w", ErrFetchFailed, err)
		}
		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: server returned %d", ErrFetchFailed, resp.StatusCode)
		}
		encoded, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: read body: %w", ErrFetchFailed, err)
		}
	} else {
		var err error
		encoded, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
		}
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(encoded)))
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %w", ErrFetchFailed, err)
	}
	return raw, nil
}
