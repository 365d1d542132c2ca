// Package builder produces the encrypted catalog blob from a Real-Debrid
// account. It lists the account's torrents, parses release names into titles
// and episode numbering, enriches entries with TMDB metadata, and seals the
// resulting catalog with the library passphrase. An encrypted cache file keeps
// repeat builds incremental: recently fetched torrents and prior TMDB lookups
// are reused instead of re-queried.
package builder
