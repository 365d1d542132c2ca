// Package logging assembles the structured slog loggers used across
// reelvault.
//
// It centralizes level and format plumbing, provides a no-op logger for tests
// and wiring code that cannot fail, and exposes component-tagged loggers so
// every line carries a consistent component attribute. Prefer these
// constructors over hand-rolled slog setup.
package logging
