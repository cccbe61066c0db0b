package protocol

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/n-widmer/tableproof/crypto/seal"
)

// Demographics holds the two derived fields that are never stored
// unencrypted.
type Demographics struct {
	Gender string `cbor:"1,keyasint" json:"gender"`
	Age    int64  `cbor:"2,keyasint" json:"age"`
}

// demographicsEnc is the deterministic CBOR mode used for the
// plaintext bundle, so that OpenDemographics is the exact inverse of
// SealDemographics.
var demographicsEnc cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	demographicsEnc = em
}

// SealDemographics encodes d canonically and encrypts it under key,
// returning the bundle in its stored form. Every call draws a fresh
// nonce.
func SealDemographics(key seal.Key, d *Demographics) (*seal.Bundle, error) {
	plaintext, err := demographicsEnc.Marshal(d)
	if err != nil {
		return nil, err
	}
	return key.Seal(plaintext)
}

// OpenDemographics decrypts and decodes a stored bundle.
// seal.ErrAuthenticationFailure is passed through unchanged so
// callers can count unreadable records; no substitute value is ever
// fabricated here. Display fallbacks belong to the presentation
// layer.
func OpenDemographics(key seal.Key, b *seal.Bundle) (*Demographics, error) {
	plaintext, err := key.Open(b)
	if err != nil {
		return nil, err
	}
	d := new(Demographics)
	if err := cbor.Unmarshal(plaintext, d); err != nil {
		return nil, fmt.Errorf("[tableproof] Cannot decode demographics: %v", err)
	}
	return d, nil
}
