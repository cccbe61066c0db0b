// Defines the boundary representations of core values: digests and
// proof siblings cross the application boundary as fixed-length hex
// strings, and proofs as JSON. Raw bytes exist only inside the core.

package application

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/n-widmer/tableproof/crypto"
	"github.com/n-widmer/tableproof/merkletree"
)

// EncodeDigest returns the transport/display form of a digest.
func EncodeDigest(digest []byte) string {
	return hex.EncodeToString(digest)
}

// DecodeDigest parses the transport form of a digest and checks its
// length.
func DecodeDigest(s string) ([]byte, error) {
	digest, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(digest) != crypto.HashSizeByte {
		return nil, fmt.Errorf("Digest must be %d bytes (got %d)", crypto.HashSizeByte, len(digest))
	}
	return digest, nil
}

// proofNodeWire is the JSON form of one proof level.
type proofNodeWire struct {
	Sibling string `json:"sibling"`
	Left    bool   `json:"left"`
}

// proofWire is the JSON form of a per-record inclusion proof,
// carrying everything a remote verifier needs besides the trusted
// root.
type proofWire struct {
	RecordID uint64          `json:"record_id"`
	Leaf     string          `json:"leaf"`
	Proof    []proofNodeWire `json:"proof"`
}

// MarshalProof encodes a record's inclusion proof for transport.
func MarshalProof(recordID uint64, leaf []byte, proof merkletree.Proof) ([]byte, error) {
	wire := proofWire{
		RecordID: recordID,
		Leaf:     EncodeDigest(leaf),
		Proof:    make([]proofNodeWire, len(proof)),
	}
	for i, n := range proof {
		wire.Proof[i] = proofNodeWire{
			Sibling: EncodeDigest(n.Sibling),
			Left:    n.Left,
		}
	}
	return json.MarshalIndent(&wire, "", "  ")
}

// UnmarshalProof decodes a transported inclusion proof back into its
// core form.
func UnmarshalProof(msg []byte) (recordID uint64, leaf []byte, proof merkletree.Proof, err error) {
	var wire proofWire
	if err = json.Unmarshal(msg, &wire); err != nil {
		return 0, nil, nil, err
	}
	leaf, err = DecodeDigest(wire.Leaf)
	if err != nil {
		return 0, nil, nil, err
	}
	proof = make(merkletree.Proof, len(wire.Proof))
	for i, n := range wire.Proof {
		sibling, err := DecodeDigest(n.Sibling)
		if err != nil {
			return 0, nil, nil, err
		}
		proof[i] = merkletree.ProofNode{Sibling: sibling, Left: n.Left}
	}
	return wire.RecordID, leaf, proof, nil
}
