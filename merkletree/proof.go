package merkletree

import (
	"fmt"

	"github.com/credledger/credledger-go/crypto/hashers"
)

// AuditProof proves that the leaf at LeafIndex is part of the tree of
// TreeSize leaves. Path runs from the leaf's sibling up to the child of
// the root.
type AuditProof struct {
	LeafIndex uint64   `cbor:"1,keyasint" json:"leaf_index"`
	TreeSize  uint64   `cbor:"2,keyasint" json:"tree_size"`
	Path      [][]byte `cbor:"3,keyasint" json:"path"`
}

// ConsistencyProof proves that the tree of OldSize leaves is a prefix
// of the tree of NewSize leaves.
type ConsistencyProof struct {
	OldSize uint64   `cbor:"1,keyasint" json:"old_size"`
	NewSize uint64   `cbor:"2,keyasint" json:"new_size"`
	Path    [][]byte `cbor:"3,keyasint" json:"path"`
}

// Prover builds audit and consistency proofs from a LeafArchive.
// It holds no mutable state of its own.
type Prover struct {
	hasher  hashers.TreeHasher
	archive LeafArchive
}

// NewProver returns a Prover reading leaf hashes from archive.
func NewProver(h hashers.TreeHasher, archive LeafArchive) *Prover {
	return &Prover{hasher: h, archive: archive}
}

func (p *Prover) leafHashes(treeSize uint64) ([][]byte, error) {
	size, err := p.archive.Size()
	if err != nil {
		return nil, err
	}
	if treeSize > size {
		return nil, fmt.Errorf("%w: tree size %d exceeds archive size %d",
			ErrIndexOutOfRange, treeSize, size)
	}
	if treeSize == 0 {
		return nil, nil
	}
	return p.archive.LeafHashes(0, treeSize)
}

// Root returns the root hash of the first treeSize archived leaves.
func (p *Prover) Root(treeSize uint64) ([]byte, error) {
	leaves, err := p.leafHashes(treeSize)
	if err != nil {
		return nil, err
	}
	return RootHash(p.hasher, leaves), nil
}

// InclusionProof returns the audit path of the leaf at leafIndex in
// the tree of the first treeSize leaves.
func (p *Prover) InclusionProof(leafIndex, treeSize uint64) (*AuditProof, error) {
	if leafIndex >= treeSize {
		return nil, fmt.Errorf("%w: leaf %d, tree size %d",
			ErrIndexOutOfRange, leafIndex, treeSize)
	}
	leaves, err := p.leafHashes(treeSize)
	if err != nil {
		return nil, err
	}
	return &AuditProof{
		LeafIndex: leafIndex,
		TreeSize:  treeSize,
		Path:      inclusionPath(p.hasher, leafIndex, leaves),
	}, nil
}

func inclusionPath(h hashers.TreeHasher, index uint64, leaves [][]byte) [][]byte {
	n := uint64(len(leaves))
	if n <= 1 {
		return [][]byte{}
	}
	k := splitPoint(n)
	if index < k {
		return append(inclusionPath(h, index, leaves[:k]), RootHash(h, leaves[k:]))
	}
	return append(inclusionPath(h, index-k, leaves[k:]), RootHash(h, leaves[:k]))
}

// ConsistencyProof returns the proof that the tree of oldSize leaves
// is a prefix of the tree of newSize leaves. The path is empty when
// oldSize is 0 or equals newSize.
func (p *Prover) ConsistencyProof(oldSize, newSize uint64) (*ConsistencyProof, error) {
	if oldSize > newSize {
		return nil, fmt.Errorf("%w: old size %d, new size %d",
			ErrIndexOutOfRange, oldSize, newSize)
	}
	leaves, err := p.leafHashes(newSize)
	if err != nil {
		return nil, err
	}
	proof := &ConsistencyProof{OldSize: oldSize, NewSize: newSize, Path: [][]byte{}}
	if oldSize > 0 && oldSize < newSize {
		proof.Path = subproof(p.hasher, oldSize, leaves, true)
	}
	return proof, nil
}

// subproof follows RFC 6962 section 2.1.2. complete reports whether
// the old tree is the whole of leaves' left-most subtree so far, in
// which case its root is known to the verifier and is omitted.
func subproof(h hashers.TreeHasher, m uint64, leaves [][]byte, complete bool) [][]byte {
	n := uint64(len(leaves))
	if m == n {
		if complete {
			return [][]byte{}
		}
		return [][]byte{RootHash(h, leaves)}
	}
	k := splitPoint(n)
	if m <= k {
		return append(subproof(h, m, leaves[:k], complete), RootHash(h, leaves[k:]))
	}
	return append(subproof(h, m-k, leaves[k:], false), RootHash(h, leaves[:k]))
}
