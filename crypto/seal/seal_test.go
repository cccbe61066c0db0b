package seal

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSealOpenRoundTrip(t *testing.T) {
	key, err := NewKey()
	require.NoError(t, err)

	plaintext := []byte(`{"gender":"F","age":28}`)
	bundle, err := key.Seal(plaintext)
	require.NoError(t, err)
	require.Len(t, bundle.Nonce, NonceSize)
	require.Greater(t, len(bundle.Ciphertext), len(plaintext), "ciphertext must carry a tag")

	got, err := key.Open(bundle)
	require.NoError(t, err)
	require.Equal(t, plaintext, got)
}

func TestOpenDetectsTampering(t *testing.T) {
	key, err := NewKey()
	require.NoError(t, err)
	bundle, err := key.Seal([]byte("sensitive fields"))
	require.NoError(t, err)

	// flipping any single bit of the ciphertext must fail loudly
	for i := range bundle.Ciphertext {
		tampered := &Bundle{
			Nonce:      bundle.Nonce,
			Ciphertext: append([]byte(nil), bundle.Ciphertext...),
		}
		tampered.Ciphertext[i] ^= 0x01
		_, err := key.Open(tampered)
		require.ErrorIs(t, err, ErrAuthenticationFailure, "byte %d", i)
	}

	// same for the nonce
	for i := range bundle.Nonce {
		tampered := &Bundle{
			Nonce:      append([]byte(nil), bundle.Nonce...),
			Ciphertext: bundle.Ciphertext,
		}
		tampered.Nonce[i] ^= 0x80
		_, err := key.Open(tampered)
		require.ErrorIs(t, err, ErrAuthenticationFailure, "byte %d", i)
	}
}

func TestOpenWrongKey(t *testing.T) {
	key1, err := NewKey()
	require.NoError(t, err)
	key2, err := NewKey()
	require.NoError(t, err)

	bundle, err := key1.Seal([]byte("sensitive fields"))
	require.NoError(t, err)
	_, err = key2.Open(bundle)
	require.ErrorIs(t, err, ErrAuthenticationFailure)
}

func TestSealFreshNonces(t *testing.T) {
	key, err := NewKey()
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 256; i++ {
		bundle, err := key.Seal([]byte("identical input"))
		require.NoError(t, err)
		nonce := hex.EncodeToString(bundle.Nonce)
		require.False(t, seen[nonce], "nonce reused on call %d", i)
		seen[nonce] = true
	}
}

func TestBadKeySize(t *testing.T) {
	_, err := Key([]byte("short")).Seal([]byte("x"))
	require.Error(t, err)
}

func TestOpenMalformedBundle(t *testing.T) {
	key, err := NewKey()
	require.NoError(t, err)

	for _, b := range []*Bundle{
		nil,
		{Nonce: nil, Ciphertext: []byte("ct")},
		{Nonce: make([]byte, NonceSize-1), Ciphertext: []byte("ct")},
		{Nonce: make([]byte, NonceSize), Ciphertext: nil},
	} {
		_, err := key.Open(b)
		require.ErrorIs(t, err, ErrMalformedBundle)
	}
}
