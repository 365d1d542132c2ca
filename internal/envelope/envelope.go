package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltLen is the PBKDF2 salt prefix length.
	SaltLen = 16
	// NonceLen is the AES-GCM nonce length.
	NonceLen = 12
	// TagLen is the AES-GCM authentication tag length.
	TagLen = 16
	// MinLen is the smallest well-formed envelope: empty plaintext still
	// carries salt, nonce, and tag.
	MinLen = SaltLen + NonceLen + TagLen

	// Iterations is the PBKDF2 cost. Chosen as a floor against offline
	// brute force while keeping interactive decryption under a second.
	Iterations = 600_000

	keyLen = 32
)

// Errors returned by envelope operations.
var (
	// ErrMalformed indicates the byte sequence is too short to contain the
	// fixed salt/nonce/tag regions.
	ErrMalformed = errors.New("malformed envelope")
	// ErrAuthentication indicates the GCM tag did not verify. A wrong
	// passphrase and a corrupted blob are indistinguishable here; callers
	// must not assume either cause.
	ErrAuthentication = errors.New("envelope authentication failed")
)

// Envelope is the parsed view of one encrypted artifact:
// salt[16] || nonce[12] || ciphertext||tag.
type Envelope struct {
	Salt   []byte
	Nonce  []byte
	Sealed []byte
}

// Parse splits raw bytes into the fixed envelope regions. Region lengths are
// constants; the sealed payload is everything after the nonce and must be at
// least one GCM tag long.
func Parse(data []byte) (Envelope, error) {
	if len(data) < MinLen {
		return Envelope{}, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformed, len(data), MinLen)
	}
	return Envelope{
		Salt:   data[:SaltLen],
		Nonce:  data[SaltLen : SaltLen+NonceLen],
		Sealed: data[SaltLen+NonceLen:],
	}, nil
}

// DeriveKey produces the 256-bit AES key for a passphrase and salt using
// PBKDF2-HMAC-SHA256 at the fixed iteration count.
func DeriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, Iterations, keyLen, sha256.New)
}

// Open decrypts an envelope with the supplied passphrase and returns the
// UTF-8 plaintext. Integrity failures of any kind map to ErrAuthentication.
func Open(data []byte, passphrase string) (string, error) {
	env, err := Parse(data)
	if err != nil {
		return "", err
	}

	gcm, err := newGCM(DeriveKey(passphrase, env.Salt))
	if err != nil {
		return "", err
	}

	plaintext, err := gcm.Open(nil, env.Nonce, env.Sealed, nil)
	if err != nil {
		return "", ErrAuthentication
	}
	return string(plaintext), nil
}

// Seal encrypts plaintext under a passphrase with a fresh salt and nonce,
// producing bytes that Open accepts. The client is decrypt-only; Seal exists
// for the builder pipeline and for round-trip fixtures.
func Seal(plaintext, passphrase string) ([]byte, error) {
	salt := make([]byte, SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	nonce := make([]byte, NonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	gcm, err := newGCM(DeriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, MinLen+len(plaintext))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, []byte(plaintext), nil)
	return out, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("gcm mode: %w", err)
	}
	return gcm, nil
}
