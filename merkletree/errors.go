package merkletree

import "errors"

var (
	// ErrInvalidProof indicates a proof of the wrong shape, with a
	// malformed element, or that does not reproduce the claimed root.
	ErrInvalidProof = errors.New("[merkletree] Invalid proof")
	// ErrIndexOutOfRange indicates a leaf index at or beyond the tree
	// size, a consistency request whose old size exceeds its new size,
	// or a tree size beyond what the leaf archive holds.
	ErrIndexOutOfRange = errors.New("[merkletree] Index out of range")
	// ErrCorruptedTreeState indicates the frontier of a tree does not
	// match its size. The tree instance must be discarded and rebuilt
	// from the leaf archive or a prior checkpoint.
	ErrCorruptedTreeState = errors.New("[merkletree] Corrupted tree state")
	// ErrInvalidLeafHash indicates a leaf hash whose length differs from
	// the hasher's output size.
	ErrInvalidLeafHash = errors.New("[merkletree] Invalid leaf hash")
	// ErrTreeFull indicates the tree holds the maximum number of leaves.
	ErrTreeFull = errors.New("[merkletree] Tree is full")
	// ErrMalformedEncoding indicates a binary encoding that cannot be
	// decoded.
	ErrMalformedEncoding = errors.New("[merkletree] Malformed encoding")
)
