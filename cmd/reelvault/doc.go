// Package main hosts the reelvault CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the full catalog lifecycle: unlocking
// the encrypted library, searching and inspecting items, resolving provider
// links to stream URLs, and building a fresh catalog from a Real-Debrid
// account. It centralizes configuration resolution, session handling, and
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
