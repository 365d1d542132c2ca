package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Library locates the encrypted catalog blob.
type Library struct {
	// URL is an http(s) location or a local file path.
	URL string `toml:"url"`
	// SessionPath is the single slot holding the catalog passphrase
	// between invocations. Empty disables session persistence.
	SessionPath string `toml:"session_path"`
}

// Debrid contains configuration for the Real-Debrid API.
type Debrid struct {
	BaseURL string `toml:"base_url"`
	// APIKey is the builder-side token; the client normally takes its
	// credential from the decrypted catalog. Env fallback: RD_API_KEY.
	APIKey string `toml:"api_key"`
}

// TMDB contains configuration for The Movie Database API, used only when
// building the catalog. Env fallback: TMDB_API_KEY.
type TMDB struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// Build contains configuration for the catalog build pipeline.
type Build struct {
	// OutputPath receives the base64-wrapped encrypted catalog.
	OutputPath string `toml:"output_path"`
	// CachePath holds the encrypted incremental cache.
	CachePath string `toml:"cache_path"`
	// RefreshHours is the age after which a cached torrent entry is
	// fetched again.
	RefreshHours int `toml:"refresh_hours"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for reelvault.
type Config struct {
	Library Library `toml:"library"`
	Debrid  Debrid  `toml:"debrid"`
	TMDB    TMDB    `toml:"tmdb"`
	Build   Build   `toml:"build"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/reelvault/config.toml")
}

// Load locates, parses, normalizes, and validates a configuration file. A
// missing file resolves to defaults. The second return is the resolved path,
// the third whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("reelvault.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
