package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	var err error

	if strings.TrimSpace(c.Library.SessionPath) != "" {
		if c.Library.SessionPath, err = expandPath(c.Library.SessionPath); err != nil {
			return fmt.Errorf("library.session_path: %w", err)
		}
	}
	if c.Build.OutputPath, err = expandPath(c.Build.OutputPath); err != nil {
		return fmt.Errorf("build.output_path: %w", err)
	}
	if c.Build.CachePath, err = expandPath(c.Build.CachePath); err != nil {
		return fmt.Errorf("build.cache_path: %w", err)
	}

	c.Debrid.BaseURL = strings.TrimRight(strings.TrimSpace(c.Debrid.BaseURL), "/")
	if c.Debrid.BaseURL == "" {
		c.Debrid.BaseURL = defaultDebridBaseURL
	}
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	if c.Build.RefreshHours <= 0 {
		c.Build.RefreshHours = defaultRefreshHours
	}

	// Env fallbacks for credentials that should not live in the file.
	if strings.TrimSpace(c.Debrid.APIKey) == "" {
		c.Debrid.APIKey = strings.TrimSpace(os.Getenv("RD_API_KEY"))
	}
	if strings.TrimSpace(c.TMDB.APIKey) == "" {
		c.TMDB.APIKey = strings.TrimSpace(os.Getenv("TMDB_API_KEY"))
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	return filepath.Abs(trimmed)
}
