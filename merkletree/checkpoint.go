package merkletree

import (
	"bytes"
	"fmt"
)

// Checkpoint is the (tree size, root hash) pair committing a ledger's
// first TreeSize transactions.
type Checkpoint struct {
	TreeSize uint64 `cbor:"1,keyasint" json:"tree_size"`
	RootHash []byte `cbor:"2,keyasint" json:"root_hash"`
}

// Equal reports whether cp and other commit the same tree.
func (cp Checkpoint) Equal(other Checkpoint) bool {
	return cp.TreeSize == other.TreeSize && bytes.Equal(cp.RootHash, other.RootHash)
}

func (cp Checkpoint) String() string {
	return fmt.Sprintf("{size: %d, root: %x}", cp.TreeSize, cp.RootHash)
}
