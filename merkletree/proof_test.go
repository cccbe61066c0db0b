package merkletree

import (
	"bytes"
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestVerifyProofAllIndices(t *testing.T) {
	for n := 1; n <= 9; n++ {
		leaves := makeLeaves(n)
		root := BuildRoot(leaves)
		for i := 0; i < n; i++ {
			proof, err := ProveInclusion(leaves, i)
			if err != nil {
				t.Fatal(err)
			}
			if !VerifyInclusion(leaves[i], proof, root) {
				t.Errorf("Proof for leaf %d of %d failed to verify", i, n)
			}
		}
	}
}

func TestProveInclusionOutOfRange(t *testing.T) {
	leaves := makeLeaves(4)
	for _, idx := range []int{-1, 4, 100} {
		if _, err := ProveInclusion(leaves, idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Index %d: expected ErrIndexOutOfRange, got %v", idx, err)
		}
	}
	if _, err := ProveInclusion(nil, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Error("Empty leaf list should reject every index")
	}
}

func TestProofOfSingleLeafIsEmpty(t *testing.T) {
	leaves := makeLeaves(1)
	proof, err := ProveInclusion(leaves, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(proof) != 0 {
		t.Error("Single-leaf proof should contain no siblings")
	}
	if !VerifyInclusion(leaves[0], proof, BuildRoot(leaves)) {
		t.Error("Empty proof of a single leaf should verify against its root")
	}
}

func TestUnpairedLeafIsOwnRightSibling(t *testing.T) {
	leaves := makeLeaves(3)
	proof, err := ProveInclusion(leaves, 2)
	if err != nil {
		t.Fatal(err)
	}
	if proof[0].Left {
		t.Error("The duplicated sibling of an unpaired leaf must be recorded on the right")
	}
	if !bytes.Equal(proof[0].Sibling, leaves[2]) {
		t.Error("The unpaired leaf's sibling must be the leaf itself")
	}
	if !VerifyInclusion(leaves[2], proof, BuildRoot(leaves)) {
		t.Error("Proof of the unpaired leaf failed to verify")
	}
}

func TestProofSiblingSides(t *testing.T) {
	leaves := makeLeaves(4)
	proof, err := ProveInclusion(leaves, 1)
	if err != nil {
		t.Fatal(err)
	}
	// leaf 1 is a right child: its first sibling is leaf 0, on the left
	if !proof[0].Left || !bytes.Equal(proof[0].Sibling, leaves[0]) {
		t.Error("Expected leaf 0 as the left sibling of leaf 1")
	}
	// at the next level the path node is a left child
	if proof[1].Left {
		t.Error("Expected a right sibling at the second level")
	}
}

func TestVerifyRejectsTamperedLeaf(t *testing.T) {
	leaves := makeLeaves(5)
	root := BuildRoot(leaves)
	proof, err := ProveInclusion(leaves, 2)
	if err != nil {
		t.Fatal(err)
	}

	tampered := append([]byte(nil), leaves[2]...)
	tampered[0] ^= 0x01
	if VerifyInclusion(tampered, proof, root) {
		t.Error("Tampered leaf verified against the original root")
	}
}

func TestVerifyRejectsWrongRoot(t *testing.T) {
	leaves := makeLeaves(5)
	proof, err := ProveInclusion(leaves, 0)
	if err != nil {
		t.Fatal(err)
	}
	otherRoot := BuildRoot(makeLeaves(6))
	if VerifyInclusion(leaves[0], proof, otherRoot) {
		t.Error("Proof verified against an unrelated root")
	}
}

func TestVerifyRejectsTamperedProof(t *testing.T) {
	leaves := makeLeaves(8)
	root := BuildRoot(leaves)
	proof, err := ProveInclusion(leaves, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := range proof {
		bad := make(Proof, len(proof))
		copy(bad, proof)
		sibling := append([]byte(nil), proof[i].Sibling...)
		sibling[5] ^= 0x40
		bad[i] = ProofNode{Sibling: sibling, Left: proof[i].Left}
		if VerifyInclusion(leaves[3], bad, root) {
			t.Errorf("Proof with tampered sibling at level %d verified", i)
		}
	}
}

func TestProofProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 64

	properties := gopter.NewProperties(parameters)

	properties.Property("every leaf of a random table proves inclusion", prop.ForAll(
		func(rows [][]byte) bool {
			leaves := make([][]byte, len(rows))
			for i, row := range rows {
				leaves[i] = LeafHash(row)
			}
			root := BuildRoot(leaves)
			for i := range leaves {
				proof, err := ProveInclusion(leaves, i)
				if err != nil {
					return false
				}
				if !VerifyInclusion(leaves[i], proof, root) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.SliceOf(gen.UInt8())),
	))

	properties.Property("a corrupted row never proves against the old root", prop.ForAll(
		func(rows [][]byte, seed uint64) bool {
			if len(rows) == 0 {
				return true
			}
			leaves := make([][]byte, len(rows))
			for i, row := range rows {
				leaves[i] = LeafHash(row)
			}
			root := BuildRoot(leaves)

			victim := int(seed % uint64(len(rows)))
			corrupted := append(append([]byte(nil), rows[victim]...), 0xff)
			leaves[victim] = LeafHash(corrupted)

			proof, err := ProveInclusion(leaves, victim)
			if err != nil {
				return false
			}
			return !VerifyInclusion(leaves[victim], proof, root)
		},
		gen.SliceOf(gen.SliceOf(gen.UInt8())),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}
