package merkletree

import (
	"fmt"
	"math"
	"sync"

	"github.com/credledger/credledger-go/crypto/hashers"
)

// CompactTree is the append-only accumulator of a single ledger.
// It keeps the number of leaves and the frontier of the tree,
// never the leaves themselves.
//
// Append requires a single writer per tree; Size, Root, Checkpoint and
// Frontier may be called concurrently with it and never observe a
// partially merged frontier.
type CompactTree struct {
	hasher hashers.TreeHasher

	mu       sync.RWMutex
	size     uint64
	frontier []Node
}

// NewCompactTree returns an empty tree using the given hasher.
func NewCompactTree(h hashers.TreeHasher) *CompactTree {
	return &CompactTree{hasher: h}
}

// RestoreCompactTree rebuilds a tree from a previously saved size and
// frontier. It returns ErrCorruptedTreeState if the frontier does not
// match the size.
func RestoreCompactTree(h hashers.TreeHasher, size uint64, frontier []Node) (*CompactTree, error) {
	f := copyFrontier(frontier)
	if err := validateFrontier(h, size, f); err != nil {
		return nil, err
	}
	return &CompactTree{hasher: h, size: size, frontier: f}, nil
}

// Hasher returns the tree's hasher.
func (t *CompactTree) Hasher() hashers.TreeHasher {
	return t.hasher
}

// Append hashes leaf as a leaf of the tree, appends it,
// and returns the checkpoint of the extended tree.
func (t *CompactTree) Append(leaf []byte) (Checkpoint, error) {
	return t.AppendLeafHash(t.hasher.HashLeaf(leaf))
}

// AppendLeafHash appends an already hashed leaf and returns the
// checkpoint of the extended tree.
func (t *CompactTree) AppendLeafHash(leafHash []byte) (Checkpoint, error) {
	if len(leafHash) != t.hasher.Size() {
		return Checkpoint{}, fmt.Errorf("%w: got %d bytes, want %d",
			ErrInvalidLeafHash, len(leafHash), t.hasher.Size())
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.size == math.MaxUint64 {
		return Checkpoint{}, ErrTreeFull
	}
	t.frontier = appendToFrontier(t.hasher, t.frontier, append([]byte(nil), leafHash...))
	t.size++
	return Checkpoint{TreeSize: t.size, RootHash: foldFrontier(t.hasher, t.frontier)}, nil
}

// appendToFrontier returns a new frontier with leafHash added.
// The passed frontier is not modified.
//
// Each merge pairs the two most recent subtrees of equal size, exactly
// as the trailing ones of the old size carry when it is incremented.
func appendToFrontier(h hashers.TreeHasher, frontier []Node, leafHash []byte) []Node {
	next := make([]Node, len(frontier), len(frontier)+1)
	copy(next, frontier)

	node := Node{Level: 0, Hash: leafHash}
	for len(next) > 0 && next[len(next)-1].Level == node.Level {
		left := next[len(next)-1]
		next = next[:len(next)-1]
		node = Node{Level: node.Level + 1, Hash: h.HashChildren(left.Hash, node.Hash)}
	}
	return append(next, node)
}

// foldFrontier combines the frontier peaks right to left, which is
// the recursive MTH definition evaluated over the peaks.
func foldFrontier(h hashers.TreeHasher, frontier []Node) []byte {
	if len(frontier) == 0 {
		return h.HashEmpty()
	}
	root := frontier[len(frontier)-1].Hash
	for i := len(frontier) - 2; i >= 0; i-- {
		root = h.HashChildren(frontier[i].Hash, root)
	}
	return root
}

// validateFrontier checks that the frontier levels are strictly
// descending and are exactly the set bits of size.
func validateFrontier(h hashers.TreeHasher, size uint64, frontier []Node) error {
	var covered uint64
	for i, n := range frontier {
		if n.Level >= 64 {
			return fmt.Errorf("%w: frontier level %d", ErrCorruptedTreeState, n.Level)
		}
		if i > 0 && n.Level >= frontier[i-1].Level {
			return fmt.Errorf("%w: frontier levels not descending", ErrCorruptedTreeState)
		}
		if len(n.Hash) != h.Size() {
			return fmt.Errorf("%w: frontier hash of %d bytes", ErrCorruptedTreeState, len(n.Hash))
		}
		covered |= 1 << n.Level
	}
	if covered != size {
		return fmt.Errorf("%w: frontier covers %d leaves, tree size is %d",
			ErrCorruptedTreeState, covered, size)
	}
	return nil
}

// Validate re-checks the frontier invariant. A tree failing it must be
// discarded.
func (t *CompactTree) Validate() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return validateFrontier(t.hasher, t.size, t.frontier)
}

// Size returns the number of leaves in the tree.
func (t *CompactTree) Size() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// Root returns the root hash of the tree; H("") when it is empty.
func (t *CompactTree) Root() []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return foldFrontier(t.hasher, t.frontier)
}

// Checkpoint returns the current (size, root) pair.
func (t *CompactTree) Checkpoint() Checkpoint {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Checkpoint{TreeSize: t.size, RootHash: foldFrontier(t.hasher, t.frontier)}
}

// Frontier returns a copy of the tree size and frontier, suitable for
// RestoreCompactTree.
func (t *CompactTree) Frontier() (uint64, []Node) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size, copyFrontier(t.frontier)
}
