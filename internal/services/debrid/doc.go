// Package debrid talks to the Real-Debrid API: torrent listing and info for
// the builder pipeline, and on-demand link unrestriction for the client.
//
// The Resolver wraps unrestriction with a write-once cache. A missing
// credential fails before any network call; provider failures carry the
// status and a bounded body slice so the CLI can surface them inline.
package debrid
