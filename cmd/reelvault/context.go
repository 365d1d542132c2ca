package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"reelvault/internal/config"
	"reelvault/internal/library"
	"reelvault/internal/logging"
	"reelvault/internal/session"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	libraryOnce sync.Once
	library     *library.Session
	libraryErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the invocation logger with a correlation ID so log
// lines from one run can be grouped.
func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: os.Stderr,
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger.With(logging.String("run_id", uuid.NewString()))
	})
	return c.logger
}

// ensureLibrary wires the library session once per invocation.
func (c *commandContext) ensureLibrary() (*library.Session, error) {
	c.libraryOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.libraryErr = err
			return
		}
		logger := c.ensureLogger()
		store := session.NewStore(cfg.Library.SessionPath, logger)
		c.library = library.New(cfg, store, logger)
	})
	return c.library, c.libraryErr
}

// resumedLibrary returns a library session restored from the saved
// passphrase slot, translating the sentinel errors into user guidance.
func (c *commandContext) resumedLibrary(cmd *cobra.Command) (*library.Session, error) {
	lib, err := c.ensureLibrary()
	if err != nil {
		return nil, err
	}
	if err := lib.Resume(cmd.Context()); err != nil {
		switch {
		case errors.Is(err, library.ErrNoSavedSession):
			return nil, errors.New("no active session; run `reelvault login` first")
		case errors.Is(err, library.ErrFetchFailed):
			return nil, fmt.Errorf("library unavailable: %w", err)
		default:
			return nil, err
		}
	}
	return lib, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
