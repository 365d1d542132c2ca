// Package config loads, normalizes, and validates reelvault configuration.
//
// It supplies repository defaults, expands tilde paths, reads TOML files,
// and honours environment fallbacks for credentials (RD_API_KEY,
// TMDB_API_KEY). Obtain settings through this package so downstream code
// receives sanitized paths and canonical log settings.
package config
