// Package envelope implements the encrypted catalog container: a fixed
// salt/nonce/sealed-payload layout with PBKDF2-HMAC-SHA256 key derivation and
// AES-256-GCM authenticated decryption.
//
// The format matches the build pipeline's output byte for byte:
// salt[16] || nonce[12] || ciphertext||tag, 600,000 PBKDF2 iterations over
// the salt. A wrong passphrase and a tampered blob both surface as
// ErrAuthentication; the tag cannot tell them apart and the package does not
// guess.
//
// All operations are pure (no I/O beyond crypto/rand in Seal) and safe for
// concurrent use.
package envelope
