package merkletree

import (
	"fmt"
	"testing"

	"github.com/credledger/credledger-go/crypto/hashers"
	"github.com/credledger/credledger-go/crypto/hashers/rfc6962"
	"github.com/stretchr/testify/require"
)

func testHasher() hashers.TreeHasher {
	return rfc6962.New()
}

func testLeaves(n int) [][]byte {
	leaves := make([][]byte, n)
	for i := range leaves {
		leaves[i] = []byte(fmt.Sprintf("txn-%d", i))
	}
	return leaves
}

// newTestLedger appends the leaves to both a CompactTree and a
// MemArchive, and returns them together with a Prover over the archive.
func newTestLedger(t *testing.T, leaves [][]byte) (*CompactTree, *MemArchive, *Prover) {
	t.Helper()
	h := testHasher()
	tree := NewCompactTree(h)
	archive := NewMemArchive()
	for _, leaf := range leaves {
		_, err := archive.Append(h.HashLeaf(leaf))
		require.NoError(t, err)
		_, err = tree.Append(leaf)
		require.NoError(t, err)
	}
	return tree, archive, NewProver(h, archive)
}

func leafHashes(h hashers.TreeHasher, leaves [][]byte) [][]byte {
	out := make([][]byte, len(leaves))
	for i, leaf := range leaves {
		out[i] = h.HashLeaf(leaf)
	}
	return out
}

func flipped(b []byte, i int) []byte {
	c := append([]byte(nil), b...)
	c[i%len(c)] ^= 0x01
	return c
}

func clonePath(path [][]byte) [][]byte {
	c := make([][]byte, len(path))
	for i, e := range path {
		c[i] = append([]byte(nil), e...)
	}
	return c
}
