// Package library owns the client session: fetching the encrypted catalog,
// decrypting it, holding the search index, and wiring the link resolver with
// the credential embedded in the catalog.
//
// The Session is the single writer of the passphrase slot and the owner of
// the resolution cache, created at the top level and passed to the commands
// that need it.
package library
