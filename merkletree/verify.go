package merkletree

import (
	"bytes"
	"fmt"

	"github.com/credledger/credledger-go/crypto/hashers"
)

// RootFromInclusionProof computes the root implied by leafHash sitting
// at leafIndex in a tree of treeSize leaves, given its audit path.
// The path must have exactly one element per level of the tree.
func RootFromInclusionProof(h hashers.TreeHasher, leafIndex, treeSize uint64,
	leafHash []byte, path [][]byte) ([]byte, error) {
	if leafIndex >= treeSize {
		return nil, fmt.Errorf("%w: leaf %d, tree size %d",
			ErrIndexOutOfRange, leafIndex, treeSize)
	}
	if len(leafHash) != h.Size() {
		return nil, fmt.Errorf("%w: leaf hash of %d bytes", ErrInvalidProof, len(leafHash))
	}

	// right[d] is true when the leaf's ancestor at depth d+1 is a right child.
	var right []bool
	for i, n := leafIndex, treeSize; n > 1; {
		k := splitPoint(n)
		if i < k {
			right = append(right, false)
			n = k
		} else {
			right = append(right, true)
			i -= k
			n -= k
		}
	}
	if len(path) != len(right) {
		return nil, fmt.Errorf("%w: %d path elements, want %d",
			ErrInvalidProof, len(path), len(right))
	}

	hash := leafHash
	for j, sibling := range path {
		if len(sibling) != h.Size() {
			return nil, fmt.Errorf("%w: path element %d has %d bytes",
				ErrInvalidProof, j, len(sibling))
		}
		if right[len(right)-1-j] {
			hash = h.HashChildren(sibling, hash)
		} else {
			hash = h.HashChildren(hash, sibling)
		}
	}
	return hash, nil
}

// VerifyInclusion checks that leafHash is the leaf at leafIndex of the
// tree of treeSize leaves with the given root.
func VerifyInclusion(h hashers.TreeHasher, leafHash []byte, leafIndex, treeSize uint64,
	path [][]byte, root []byte) error {
	calculated, err := RootFromInclusionProof(h, leafIndex, treeSize, leafHash, path)
	if err != nil {
		return err
	}
	if !bytes.Equal(calculated, root) {
		return fmt.Errorf("%w: calculated root %x, want %x", ErrInvalidProof, calculated, root)
	}
	return nil
}

// VerifyAuditProof is VerifyInclusion for an AuditProof.
func VerifyAuditProof(h hashers.TreeHasher, leafHash []byte, proof *AuditProof, root []byte) bool {
	if proof == nil {
		return false
	}
	return VerifyInclusion(h, leafHash, proof.LeafIndex, proof.TreeSize, proof.Path, root) == nil
}

// RootsFromConsistencyProof recomputes the old and the new root from a
// consistency proof between two non-empty trees. The old root is
// needed when the old tree is a complete left-most subtree of the new
// one, since the proof omits it then.
func RootsFromConsistencyProof(h hashers.TreeHasher, oldSize, newSize uint64,
	oldRoot []byte, path [][]byte) ([]byte, []byte, error) {
	switch {
	case oldSize > newSize:
		return nil, nil, fmt.Errorf("%w: old size %d, new size %d",
			ErrIndexOutOfRange, oldSize, newSize)
	case oldSize == 0:
		return nil, nil, fmt.Errorf("%w: no roots to recompute from an empty tree", ErrInvalidProof)
	}
	for j, e := range path {
		if len(e) != h.Size() {
			return nil, nil, fmt.Errorf("%w: path element %d has %d bytes",
				ErrInvalidProof, j, len(e))
		}
	}
	return consistencyRoots(h, oldSize, newSize, true, oldRoot, path)
}

// consistencyRoots mirrors subproof, consuming path from its end.
func consistencyRoots(h hashers.TreeHasher, m, n uint64, complete bool,
	oldRoot []byte, path [][]byte) ([]byte, []byte, error) {
	if m == n {
		if complete {
			if len(path) != 0 {
				return nil, nil, fmt.Errorf("%w: %d unused path elements", ErrInvalidProof, len(path))
			}
			return oldRoot, oldRoot, nil
		}
		if len(path) != 1 {
			return nil, nil, fmt.Errorf("%w: %d path elements left, want 1", ErrInvalidProof, len(path))
		}
		return path[0], path[0], nil
	}
	if len(path) == 0 {
		return nil, nil, fmt.Errorf("%w: path too short", ErrInvalidProof)
	}
	last, rest := path[len(path)-1], path[:len(path)-1]
	k := splitPoint(n)
	if m <= k {
		oldHash, newHash, err := consistencyRoots(h, m, k, complete, oldRoot, rest)
		if err != nil {
			return nil, nil, err
		}
		return oldHash, h.HashChildren(newHash, last), nil
	}
	oldHash, newHash, err := consistencyRoots(h, m-k, n-k, false, oldRoot, rest)
	if err != nil {
		return nil, nil, err
	}
	return h.HashChildren(last, oldHash), h.HashChildren(last, newHash), nil
}

// VerifyConsistency checks that the tree (oldSize, oldRoot) is a
// prefix of the tree (newSize, newRoot).
func VerifyConsistency(h hashers.TreeHasher, oldSize, newSize uint64,
	oldRoot, newRoot []byte, path [][]byte) error {
	switch {
	case oldSize > newSize:
		return fmt.Errorf("%w: old size %d, new size %d", ErrIndexOutOfRange, oldSize, newSize)
	case oldSize == 0:
		if len(path) != 0 {
			return fmt.Errorf("%w: non-empty proof from an empty tree", ErrInvalidProof)
		}
		return nil
	case oldSize == newSize:
		if len(path) != 0 {
			return fmt.Errorf("%w: non-empty proof between equal sizes", ErrInvalidProof)
		}
		if !bytes.Equal(oldRoot, newRoot) {
			return fmt.Errorf("%w: different roots at size %d", ErrInvalidProof, oldSize)
		}
		return nil
	}

	oldHash, newHash, err := RootsFromConsistencyProof(h, oldSize, newSize, oldRoot, path)
	if err != nil {
		return err
	}
	if !bytes.Equal(oldHash, oldRoot) {
		return fmt.Errorf("%w: calculated old root %x, want %x", ErrInvalidProof, oldHash, oldRoot)
	}
	if !bytes.Equal(newHash, newRoot) {
		return fmt.Errorf("%w: calculated new root %x, want %x", ErrInvalidProof, newHash, newRoot)
	}
	return nil
}

// VerifyConsistencyProof is VerifyConsistency for a ConsistencyProof.
func VerifyConsistencyProof(h hashers.TreeHasher, proof *ConsistencyProof, oldRoot, newRoot []byte) bool {
	if proof == nil {
		return false
	}
	return VerifyConsistency(h, proof.OldSize, proof.NewSize, oldRoot, newRoot, proof.Path) == nil
}
