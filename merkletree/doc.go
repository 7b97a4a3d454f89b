/*
Package merkletree implements the append-only Merkle audit tree of a
ledger, and the proofs a client uses to check replies from ledger
nodes without trusting any single node.

The tree is the Certificate-Transparency style Merkle hash tree
(RFC 6962, section 2.1). For n leaves D[0:n]:

	MTH(0)       = H("")
	MTH([d])     = H(0x00 || d)
	MTH(D[0:n])  = H(0x01 || MTH(D[0:k]) || MTH(D[k:n])),  k < n, k the largest power of two

The hash functions and their domain separation are provided by the
crypto/hashers package.

Compact Tree

CompactTree accumulates leaves one at a time, keeping only the tree
size and its frontier: the roots of the perfect subtrees whose sizes
are the set bits of the tree size, largest first. Appending a leaf
merges frontier nodes the way incrementing a binary counter carries,
so appends and root computations take O(log n) work and space.
The frontier never holds history; proofs need a LeafArchive.

Proofs

Prover builds inclusion (audit) proofs and consistency proofs from a
LeafArchive. VerifyInclusion and VerifyConsistency are pure functions
of a proof and a claimed root. Both replay the recursive split of the
tree to determine the exact shape the proof must have, so reordered,
truncated or padded proofs are rejected.

Checkpoint

A Checkpoint is a (tree size, root hash) pair. A client pins one
obtained out of band and only ever replaces it with a later checkpoint
proven consistent with it.
*/
package merkletree
