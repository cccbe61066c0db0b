// This module implements the audit orchestrator: one synchronous full
// pass over an identifier-ordered table snapshot, checking every
// record against a trusted root pinned out-of-band.

package auditor

import (
	"errors"

	"github.com/n-widmer/tableproof/crypto/seal"
	"github.com/n-widmer/tableproof/merkletree"
	"github.com/n-widmer/tableproof/protocol"
)

var (
	// ErrUnorderedSnapshot indicates a snapshot that is not in
	// strictly ascending identifier order. Leaf order is defined by
	// identifier order; auditing an unordered snapshot would produce
	// meaningless verdicts, so this is fatal to the call.
	ErrUnorderedSnapshot = errors.New("[auditor] Snapshot not in ascending identifier order")

	// ErrMissingDigest indicates a record without a committed leaf
	// digest. Proof siblings come from the digests written at store
	// time; a snapshot that doesn't carry them cannot be audited.
	ErrMissingDigest = errors.New("[auditor] Record carries no committed leaf digest")
)

// Auditor verifies table snapshots against a trusted root. The key
// and root are explicit per-auditor state rather than process-wide
// configuration: independent auditors with different roots and keys
// can coexist in one process.
type Auditor struct {
	key         seal.Key
	trustedRoot []byte
}

// New instantiates an auditor for the given field-encryption key and
// pinned trusted root. The trusted root is held by the verifying
// party out-of-band; it must be re-pinned after any legitimate bulk
// update, otherwise subsequent audits will correctly report
// mismatches.
func New(key seal.Key, trustedRoot []byte) *Auditor {
	return &Auditor{
		key:         key,
		trustedRoot: append([]byte(nil), trustedRoot...),
	}
}

// Result reports the verdicts of one audit pass. It is produced and
// consumed within one invocation and never stored.
type Result struct {
	// TotalRecords is the number of records in the audited snapshot.
	TotalRecords int

	// LiveRoot is the root recomputed from the snapshot. It is
	// informational only: verifying proofs against it would trivially
	// always succeed and prove nothing.
	LiveRoot []byte

	// TrustedRoot is the pinned root the proofs were verified
	// against.
	TrustedRoot []byte

	// FailedIDs lists the records whose inclusion proof does not
	// verify against the trusted root, in snapshot order.
	FailedIDs []uint64

	// UnreadableIDs lists the records whose encrypted bundle fails
	// authentication. This signal is independent of FailedIDs: an
	// unreadable record is still hashed from its stored ciphertext
	// bytes and both signals are surfaced.
	UnreadableIDs []uint64
}

// FailureCount returns the number of records whose proof failed.
func (r *Result) FailureCount() int {
	return len(r.FailedIDs)
}

// Ok reports whether the snapshot matches the trusted root and every
// encrypted bundle authenticates.
func (r *Result) Ok() bool {
	return len(r.FailedIDs) == 0 && len(r.UnreadableIDs) == 0
}

// Audit runs one full pass over records, which must be in strictly
// ascending identifier order (the order that defines the leaves and
// the proof indices) and must each carry the leaf digest committed by
// the store at write time.
//
// Proof siblings are built from the COMMITTED digests, while the
// audited record's own leaf is recomputed from its live data. An
// unauthorized write changes the live data but not the committed
// digest, so the neighbors' siblings still reconstruct the trusted
// root and exactly the tampered record fails.
//
// The pass always runs to completion: a record that fails
// verification or decryption is recorded and the audit moves on to
// the next one.
func (a *Auditor) Audit(records []protocol.Record) (*Result, error) {
	committed := make([][]byte, len(records))
	live := make([][]byte, len(records))
	for i := range records {
		if i > 0 && records[i].ID <= records[i-1].ID {
			return nil, ErrUnorderedSnapshot
		}
		canonical, err := records[i].CanonicalBytes()
		if err != nil {
			return nil, err
		}
		if len(records[i].LeafDigest) == 0 {
			return nil, ErrMissingDigest
		}
		committed[i] = records[i].LeafDigest
		live[i] = merkletree.LeafHash(canonical)
	}

	result := &Result{
		TotalRecords: len(records),
		LiveRoot:     merkletree.BuildRoot(live),
		TrustedRoot:  append([]byte(nil), a.trustedRoot...),
	}

	for i := range records {
		proof, err := merkletree.ProveInclusion(committed, i)
		if err != nil {
			return nil, err
		}
		if !merkletree.VerifyInclusion(live[i], proof, a.trustedRoot) {
			result.FailedIDs = append(result.FailedIDs, records[i].ID)
		}
		if records[i].Sensitive != nil {
			if _, err := protocol.OpenDemographics(a.key, records[i].Sensitive); err != nil {
				result.UnreadableIDs = append(result.UnreadableIDs, records[i].ID)
			}
		}
	}
	return result, nil
}
