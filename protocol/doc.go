/*
Package protocol defines the record schema protected by the integrity
commitment and its canonical serialization.

A Record is an ordered, fixed-schema tuple: the identifier, the
plaintext fields, and an encrypted bundle covering two derived
demographic fields that are never stored in the clear. The commitment
covers the stored representation of a record: the encrypted bundle
participates in the canonical serialization as its raw nonce and
ciphertext bytes, so the Merkle root can be recomputed and audited
without ever decrypting a field.

Integrity failures discovered while processing records are reported as
data (verdicts, failed identifiers), not as errors; the error values in
this package cover malformed inputs only, which are caller errors.
*/
package protocol
