package ledger

import (
	"errors"

	"github.com/credledger/credledger-go/crypto/hashers"
	"github.com/credledger/credledger-go/merkletree"
	"github.com/credledger/credledger-go/storage/kv"
	"github.com/credledger/credledger-go/storage/kv/merkletreekv"
)

// ErrNotPersistent is returned by Snapshot for a ledger not opened
// with Open.
var ErrNotPersistent = errors.New("[ledger] Ledger is not persistent")

// Open returns the ledger id kept in db, creating it if db is empty.
// Leaf hashes and payloads are written to db as transactions are
// appended. The tree is restored from the last Snapshot, if any, and
// caught up with the leaves archived after it.
func Open(db kv.DB, id string, h hashers.TreeHasher) (*Ledger, error) {
	archive, err := merkletreekv.NewArchive(db)
	if err != nil {
		return nil, err
	}
	tree, err := merkletreekv.LoadFrontier(db, id, h)
	switch {
	case kv.IsNotFound(db, err):
		tree = merkletree.NewCompactTree(h)
	case err != nil:
		return nil, err
	}
	l, err := newLedger(id, h, archive, tree)
	if err != nil {
		return nil, err
	}
	l.db = db
	return l, nil
}

// Snapshot stores the compact tree so that the next Open skips
// replaying the leaves archived so far.
func (l *Ledger) Snapshot() error {
	if l.db == nil {
		return ErrNotPersistent
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return merkletreekv.StoreFrontier(l.db, l.id, l.tree)
}
