/*
Package merkletree implements the binary hash tree committing to an
ordered table of records.

The tree is never materialized as a persistent data structure. Callers
keep the leaf digests as a flat ordered slice and the tree levels are
recomputed on demand, both when building the root and when deriving an
inclusion proof. Tree shape is entirely determined by leaf order and
count: adjacent digests are paired level by level, and an unpaired
digest at the end of a level is duplicated as its own right sibling.

Leaf hashes and interior node hashes are domain-separated with distinct
prefix bytes so that an interior node's hash can never be spliced into
a proof in place of a leaf.
*/
package merkletree
