package merkletree

import (
	"bytes"
	"errors"
)

var (
	// ErrIndexOutOfRange indicates a proof request for a leaf
	// position that does not exist. This is a caller error, fatal
	// to the call but not to the process.
	ErrIndexOutOfRange = errors.New("[merkletree] Leaf index out of range")
)

// ProofNode is one level of an inclusion proof: the sibling digest of
// the node on the path to the root, and whether that sibling sits to
// the left of the path node.
type ProofNode struct {
	Sibling []byte
	Left    bool
}

// Proof is the ordered sibling path of one leaf, from the leaf level
// up to (but excluding) the root. Proofs are generated on demand from
// the current leaf slice and never stored.
type Proof []ProofNode

// ProveInclusion derives the inclusion proof for the leaf at index.
// It rebuilds the tree levels exactly as BuildRoot does. When the
// path node is the unpaired last element of a level, its recorded
// sibling is itself, on the right, matching the builder's
// duplication rule.
func ProveInclusion(leaves [][]byte, index int) (Proof, error) {
	if index < 0 || index >= len(leaves) {
		return nil, ErrIndexOutOfRange
	}
	var proof Proof
	level := make([][]byte, len(leaves))
	copy(level, leaves)
	idx := index
	for len(level) > 1 {
		if idx%2 == 0 {
			sibIdx := idx // unpaired node duplicates itself
			if idx+1 < len(level) {
				sibIdx = idx + 1
			}
			proof = append(proof, ProofNode{Sibling: level[sibIdx], Left: false})
		} else {
			proof = append(proof, ProofNode{Sibling: level[idx-1], Left: true})
		}
		level = nextLevel(level)
		idx /= 2
	}
	return proof, nil
}

// VerifyInclusion recomputes the root from a leaf digest and its
// proof and reports whether it equals root. It is pure and stateless;
// a mismatch returns false, never an error. A proof with siblings of
// the wrong digest length is a caller contract violation and simply
// fails to verify.
func VerifyInclusion(leaf []byte, proof Proof, root []byte) bool {
	current := leaf
	for _, n := range proof {
		if n.Left {
			current = interiorHash(n.Sibling, current)
		} else {
			current = interiorHash(current, n.Sibling)
		}
	}
	return bytes.Equal(current, root)
}
