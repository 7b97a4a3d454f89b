package merkletreekv

import (
	"fmt"

	"github.com/credledger/credledger-go/crypto/hashers"
	"github.com/credledger/credledger-go/merkletree"
	"github.com/credledger/credledger-go/storage/kv"
)

// StoreFrontier snapshots tree under ledgerID.
func StoreFrontier(db kv.DB, ledgerID string, tree *merkletree.CompactTree) error {
	size, frontier := tree.Frontier()
	return db.Put(frontierKey(ledgerID), merkletree.EncodeFrontier(size, frontier))
}

// LoadFrontier rebuilds the tree snapshotted under ledgerID.
// A snapshot that cannot be decoded or restored is reported as
// merkletree.ErrCorruptedTreeState.
func LoadFrontier(db kv.DB, ledgerID string, h hashers.TreeHasher) (*merkletree.CompactTree, error) {
	buf, err := db.Get(frontierKey(ledgerID))
	if err != nil {
		return nil, err
	}
	size, frontier, err := merkletree.DecodeFrontier(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", merkletree.ErrCorruptedTreeState, err)
	}
	return merkletree.RestoreCompactTree(h, size, frontier)
}

func frontierKey(ledgerID string) []byte {
	return prefixedKey(FrontierIdentifier, []byte(ledgerID))
}
