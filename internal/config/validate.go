package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Credentials are checked at
// the point of use, not here: the client works without a TMDB key, and the
// resolver credential normally arrives inside the decrypted catalog.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Library.URL) != "" && !isSupportedLibraryURL(c.Library.URL) {
		return fmt.Errorf("library.url: unsupported scheme in %q (expect http(s) or a file path)", c.Library.URL)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func isSupportedLibraryURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return true
	}
	// Anything else is treated as a filesystem path.
	return !strings.Contains(raw, "://")
}
