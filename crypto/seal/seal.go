// Package seal implements the authenticated encryption used for the
// sensitive demographic fields of a record. The stored form is a
// (nonce, ciphertext) pair; the ciphertext carries the GCM
// authentication tag, so any modification of either part is detected
// at decryption time.
package seal

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
)

const (
	// KeySize is the size of the symmetric key in bytes (AES-256).
	KeySize = 32
	// NonceSize is the size of the GCM nonce in bytes (96 bits).
	NonceSize = 12
)

var (
	// ErrAuthenticationFailure indicates that a stored nonce or
	// ciphertext no longer matches its authentication tag. The
	// plaintext cannot be recovered; callers must treat the field
	// as unreadable rather than substitute a default.
	ErrAuthenticationFailure = errors.New("[seal] Message authentication failed")

	// ErrMalformedBundle indicates a bundle whose shape violates the
	// storage invariant (e.g. a missing nonce next to a ciphertext).
	ErrMalformedBundle = errors.New("[seal] Malformed encrypted bundle")
)

// Key is a raw AES-256 key, provisioned out-of-band. It must never
// be logged or written to the protected table.
type Key []byte

// Bundle is the stored form of an encrypted field group.
type Bundle struct {
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// NewKey generates a fresh random key.
func NewKey() (Key, error) {
	k := make([]byte, KeySize)
	if _, err := rand.Read(k); err != nil {
		return nil, err
	}
	return Key(k), nil
}

func (k Key) aead() (cipher.AEAD, error) {
	if len(k) != KeySize {
		return nil, fmt.Errorf("[seal] Key must be %d bytes (got %d)", KeySize, len(k))
	}
	block, err := aes.NewCipher(k)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext under k and returns the bundle to store.
// A fresh nonce is drawn from the system CSPRNG on every call;
// callers cannot supply their own nonce, which rules out nonce reuse
// under a fixed key by construction.
func (k Key) Seal(plaintext []byte) (*Bundle, error) {
	aead, err := k.aead()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return &Bundle{
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, plaintext, nil),
	}, nil
}

// Open decrypts a stored bundle. It returns ErrAuthenticationFailure
// if the authentication tag does not verify, which covers both bit
// corruption and hostile tampering; it never returns a plaintext
// that differs from what was sealed.
func (k Key) Open(b *Bundle) ([]byte, error) {
	if b == nil || len(b.Nonce) != NonceSize || len(b.Ciphertext) == 0 {
		return nil, ErrMalformedBundle
	}
	aead, err := k.aead()
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, b.Nonce, b.Ciphertext, nil)
	if err != nil {
		return nil, ErrAuthenticationFailure
	}
	return plaintext, nil
}
