package merkletree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tchajed/marshal"
)

func TestAuditProofEncoding(t *testing.T) {
	h := testHasher()
	leaves := testLeaves(11)
	tree, _, prover := newTestLedger(t, leaves)

	proof, err := prover.InclusionProof(6, tree.Size())
	require.NoError(t, err)
	enc := EncodeAuditProof(proof)

	decoded, err := DecodeAuditProof(enc)
	require.NoError(t, err)
	assert.Equal(t, proof, decoded)
	assert.True(t, VerifyAuditProof(h, h.HashLeaf(leaves[6]), decoded, tree.Root()))

	for i := 0; i < len(enc); i++ {
		_, err := DecodeAuditProof(enc[:i])
		require.ErrorIs(t, err, ErrMalformedEncoding, "prefix of %d bytes", i)
	}
	_, err = DecodeAuditProof(append(enc, 0))
	assert.ErrorIs(t, err, ErrMalformedEncoding)
}

func TestConsistencyProofEncoding(t *testing.T) {
	h := testHasher()
	tree, _, prover := newTestLedger(t, testLeaves(19))
	oldRoot, err := prover.Root(7)
	require.NoError(t, err)

	proof, err := prover.ConsistencyProof(7, tree.Size())
	require.NoError(t, err)
	enc := EncodeConsistencyProof(proof)

	decoded, err := DecodeConsistencyProof(enc)
	require.NoError(t, err)
	assert.Equal(t, proof, decoded)
	assert.True(t, VerifyConsistencyProof(h, decoded, oldRoot, tree.Root()))

	_, err = DecodeConsistencyProof(enc[:len(enc)-1])
	assert.ErrorIs(t, err, ErrMalformedEncoding)
}

func TestDecodeRejectsOversizedPath(t *testing.T) {
	var b []byte
	b = marshal.WriteInt(b, 0)
	b = marshal.WriteInt(b, 1)
	b = marshal.WriteInt(b, 1<<40)
	_, err := DecodeAuditProof(b)
	assert.ErrorIs(t, err, ErrMalformedEncoding)

	b = nil
	b = marshal.WriteInt(b, 0)
	b = marshal.WriteInt(b, 1)
	b = marshal.WriteInt(b, 1)
	b = marshal.WriteInt(b, 1<<40)
	_, err = DecodeConsistencyProof(b)
	assert.ErrorIs(t, err, ErrMalformedEncoding)
}

func TestFrontierEncoding(t *testing.T) {
	leaves := testLeaves(29)
	tree, _, _ := newTestLedger(t, leaves)
	size, frontier := tree.Frontier()

	gotSize, gotFrontier, err := DecodeFrontier(EncodeFrontier(size, frontier))
	require.NoError(t, err)
	require.Equal(t, size, gotSize)
	require.Equal(t, frontier, gotFrontier)

	restored, err := RestoreCompactTree(testHasher(), gotSize, gotFrontier)
	require.NoError(t, err)
	assert.Equal(t, tree.Root(), restored.Root())

	empty, emptyFrontier, err := DecodeFrontier(EncodeFrontier(0, nil))
	require.NoError(t, err)
	assert.Zero(t, empty)
	assert.Empty(t, emptyFrontier)

	enc := EncodeFrontier(size, frontier)
	_, _, err = DecodeFrontier(enc[:len(enc)-5])
	assert.ErrorIs(t, err, ErrMalformedEncoding)
}
