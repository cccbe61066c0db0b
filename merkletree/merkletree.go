package merkletree

import (
	"github.com/n-widmer/tableproof/crypto"
)

const (
	// leafNodeIdentifier is the domain separation prefix for
	// leaf hashes.
	leafNodeIdentifier byte = 0x00

	// interiorNodeIdentifier is the domain separation prefix for
	// interior node hashes.
	interiorNodeIdentifier byte = 0x01
)

// LeafHash returns the domain-separated digest of one record's
// canonical serialization. The leaf at position i of the tree is the
// LeafHash of the record with rank i in identifier order.
func LeafHash(canonical []byte) []byte {
	return crypto.Digest([]byte{leafNodeIdentifier}, canonical)
}

// interiorHash hashes an interior node given its two children.
func interiorHash(left, right []byte) []byte {
	return crypto.Digest([]byte{interiorNodeIdentifier}, left, right)
}

// EmptyRoot returns the canonical commitment to an empty table:
// the digest of zero bytes. It is a fixed constant, independent of
// any table history.
func EmptyRoot() []byte {
	return crypto.Digest()
}

// BuildRoot computes the Merkle root of an ordered list of leaf
// digests. Adjacent digests are paired at each level; when a level
// has an odd count the last digest is duplicated as its own right
// sibling. BuildRoot of a single leaf is that leaf itself (no pairing
// is performed), and BuildRoot of no leaves is EmptyRoot.
func BuildRoot(leaves [][]byte) []byte {
	if len(leaves) == 0 {
		return EmptyRoot()
	}
	level := make([][]byte, len(leaves))
	copy(level, leaves)
	for len(level) > 1 {
		level = nextLevel(level)
	}
	return level[0]
}

// nextLevel pairs adjacent digests, duplicating an unpaired last
// digest. Proof generation walks levels with the exact same rule;
// the two must never diverge or proofs stop validating.
func nextLevel(level [][]byte) [][]byte {
	next := make([][]byte, 0, (len(level)+1)/2)
	for i := 0; i < len(level); i += 2 {
		left := level[i]
		right := left
		if i+1 < len(level) {
			right = level[i+1]
		}
		next = append(next, interiorHash(left, right))
	}
	return next
}
