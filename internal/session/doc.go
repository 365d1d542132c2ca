// Package session stores the catalog passphrase in a single per-user slot so
// a later invocation can re-open the library without prompting.
//
// The slot is one file with restrictive permissions, written atomically and
// guarded by a file lock against concurrent CLI invocations. Save overwrites
// unconditionally, Get never fails, and Clear is idempotent. This is
// deliberately not a secret store; see the Store doc comment for the threat
// model.
package session
