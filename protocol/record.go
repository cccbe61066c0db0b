package protocol

import (
	"github.com/n-widmer/tableproof/crypto"
	"github.com/n-widmer/tableproof/crypto/seal"
)

// Record is one row of the protected table. The field order below is
// fixed: it defines the canonical serialization the Merkle commitment
// covers. ID is assigned once at creation, strictly increasing, and
// never changes; it defines the canonical row order and therefore the
// leaf order of the tree.
type Record struct {
	ID            uint64  `json:"id"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	HealthHistory string  `json:"health_history"`
	Weight        float64 `json:"weight"`
	Height        float64 `json:"height"`

	// Sensitive is the encrypted demographic bundle. It is either
	// fully present (nonce and ciphertext both set) or nil for a
	// legacy unencrypted record; a half-set bundle is malformed.
	Sensitive *seal.Bundle `json:"sensitive,omitempty"`

	// LeafDigest is the record's leaf digest as committed at write
	// time by the store. It is deliberately NOT part of the canonical
	// field list: an unauthorized write that changes the data but not
	// the digest leaves the neighbors' proofs intact, so an audit can
	// localize the tampered record instead of flagging the whole
	// table. Empty on a record that has never been stored.
	LeafDigest []byte `json:"leaf_digest,omitempty"`
}

// Validate checks the record's structural invariants.
func (r *Record) Validate() error {
	if r.Sensitive != nil {
		if len(r.Sensitive.Nonce) == 0 || len(r.Sensitive.Ciphertext) == 0 {
			return ErrMalformedRecord
		}
	}
	if len(r.LeafDigest) != 0 && len(r.LeafDigest) != crypto.HashSizeByte {
		return ErrMalformedRecord
	}
	return nil
}

// CanonicalBytes serializes the record's ordered field list for leaf
// hashing. The encrypted bundle participates as its stored nonce and
// ciphertext bytes; decrypted values never enter the commitment. The
// result is bit-identical for the same logical record state.
func (r *Record) CanonicalBytes() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	fields := []Field{
		UintField(r.ID),
		StringField(r.FirstName),
		StringField(r.LastName),
		StringField(r.HealthHistory),
		FloatField(r.Weight),
		FloatField(r.Height),
	}
	if r.Sensitive != nil {
		fields = append(fields,
			BytesField(r.Sensitive.Nonce),
			BytesField(r.Sensitive.Ciphertext))
	} else {
		fields = append(fields, AbsentField(), AbsentField())
	}
	return Canonicalize(fields)
}
