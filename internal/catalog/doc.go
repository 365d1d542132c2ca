// Package catalog defines the decrypted library document, the derived search
// index, and the pure projections the CLI renders.
//
// A Catalog is replaced wholesale on login and dropped on logout; the index
// is rebuilt in the same step so filtering never observes a stale view.
// BuildIndex, DisplayTitle, EpisodeLabel, and ApplyFilters are side-effect
// free and never mutate the source items.
//
// The JSON wire format uses the snake_case field names the build pipeline
// emits (is_pack, friendly_name, stream_url, rd_key).
package catalog
