package merkletree

import (
	"math/bits"

	"github.com/credledger/credledger-go/crypto/hashers"
)

// RootHash computes the Merkle tree hash of the given leaf hashes
// directly from the recursive definition. It is the ground truth the
// CompactTree is checked against, and how the Prover hashes subtrees.
func RootHash(h hashers.TreeHasher, leafHashes [][]byte) []byte {
	switch n := len(leafHashes); n {
	case 0:
		return h.HashEmpty()
	case 1:
		return leafHashes[0]
	default:
		k := splitPoint(uint64(n))
		return h.HashChildren(RootHash(h, leafHashes[:k]), RootHash(h, leafHashes[k:]))
	}
}

// splitPoint returns the largest power of two smaller than n, for n > 1.
func splitPoint(n uint64) uint64 {
	return 1 << (bits.Len64(n-1) - 1)
}
