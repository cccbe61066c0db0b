// Defines the error values the integrity core may report for
// malformed inputs. Tamper signals (authentication failures and
// proof mismatches) are never errors; they are reported as data so
// that an audit pass can keep going after one record fails.

package protocol

import "errors"

var (
	// ErrMalformedRecord indicates a record violating a structural
	// invariant, e.g. an encrypted bundle with exactly one of its
	// nonce and ciphertext set.
	ErrMalformedRecord = errors.New("[tableproof] Malformed record")

	// ErrMalformedField indicates a field value the canonical
	// encoding is not defined for, e.g. a non-finite float.
	ErrMalformedField = errors.New("[tableproof] Malformed field value")
)
