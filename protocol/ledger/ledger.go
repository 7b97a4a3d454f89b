// Package ledger implements the node side of the ledger audit
// protocol: an append-only ledger of transactions that answers reads
// with audit paths and hands out consistency-proven checkpoints.
//
// Clients use it as the reference counterpart of the auditor, and it
// is what tests and tools drive to produce protocol messages.
package ledger

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/credledger/credledger-go/crypto/hashers"
	"github.com/credledger/credledger-go/merkletree"
	"github.com/credledger/credledger-go/protocol"
	"github.com/credledger/credledger-go/storage/kv"
	"github.com/credledger/credledger-go/storage/kv/merkletreekv"
)

// ErrUnknownTransaction indicates a transaction whose leaf is archived
// but whose payload this Ledger does not hold, such as one appended
// before the archive was reopened.
var ErrUnknownTransaction = errors.New("[ledger] Unknown transaction")

// A Ledger holds the transactions of one ledger, the compact tree
// over them and the archive of their leaf hashes.
type Ledger struct {
	id     string
	hasher hashers.TreeHasher

	mu       sync.RWMutex
	tree     *merkletree.CompactTree
	archive  merkletree.LeafStore
	prover   *merkletree.Prover
	payloads map[uint64][]byte

	// db is set for ledgers opened with Open.
	db kv.DB
}

// New returns the ledger id backed by archive. Leaves already in the
// archive are replayed into the tree.
func New(id string, h hashers.TreeHasher, archive merkletree.LeafStore) (*Ledger, error) {
	return newLedger(id, h, archive, merkletree.NewCompactTree(h))
}

// newLedger catches tree up with the leaves archive holds beyond it.
func newLedger(id string, h hashers.TreeHasher, archive merkletree.LeafStore,
	tree *merkletree.CompactTree) (*Ledger, error) {
	size, err := archive.Size()
	if err != nil {
		return nil, err
	}
	if tree.Size() > size {
		return nil, fmt.Errorf("%w: tree of %d leaves over an archive of %d",
			merkletree.ErrCorruptedTreeState, tree.Size(), size)
	}
	if tree.Size() < size {
		leaves, err := archive.LeafHashes(tree.Size(), size)
		if err != nil {
			return nil, err
		}
		for _, leaf := range leaves {
			if _, err := tree.AppendLeafHash(leaf); err != nil {
				return nil, err
			}
		}
	}
	return &Ledger{
		id:       id,
		hasher:   h,
		tree:     tree,
		archive:  archive,
		prover:   merkletree.NewProver(h, archive),
		payloads: make(map[uint64][]byte),
	}, nil
}

// ID returns the ledger's identifier.
func (l *Ledger) ID() string {
	return l.id
}

// Append adds a transaction and returns the new checkpoint. Its
// sequence number is the new tree size. The leaf is archived before
// the tree is extended; if archiving fails the tree is unchanged.
func (l *Ledger) Append(payload []byte) (merkletree.Checkpoint, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.tree.Size() == math.MaxUint64 {
		return merkletree.Checkpoint{}, merkletree.ErrTreeFull
	}
	if l.db != nil {
		if err := merkletreekv.StorePayload(l.db, l.tree.Size()+1, payload); err != nil {
			return merkletree.Checkpoint{}, fmt.Errorf("store payload: %w", err)
		}
	}
	leafHash := l.hasher.HashLeaf(payload)
	if _, err := l.archive.Append(leafHash); err != nil {
		return merkletree.Checkpoint{}, fmt.Errorf("archive transaction: %w", err)
	}
	cp, err := l.tree.AppendLeafHash(leafHash)
	if err != nil {
		return merkletree.Checkpoint{}, err
	}
	if l.db == nil {
		l.payloads[cp.TreeSize] = append([]byte(nil), payload...)
	}
	return cp, nil
}

// Checkpoint returns the latest checkpoint.
func (l *Ledger) Checkpoint() merkletree.Checkpoint {
	return l.tree.Checkpoint()
}

// Tree returns the ledger's compact tree.
func (l *Ledger) Tree() *merkletree.CompactTree {
	return l.tree
}

// Reply answers a read of transaction seqNo with a proof against the
// tree of treeSize transactions. A treeSize of 0 means the latest tree.
func (l *Ledger) Reply(seqNo, treeSize uint64) (*protocol.Reply, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reply(seqNo, treeSize)
}

func (l *Ledger) reply(seqNo, treeSize uint64) (*protocol.Reply, error) {
	if treeSize == 0 {
		treeSize = l.tree.Size()
	}
	if seqNo == 0 || seqNo > treeSize {
		return nil, fmt.Errorf("%w: seqNo %d, tree size %d",
			merkletree.ErrIndexOutOfRange, seqNo, treeSize)
	}
	payload, err := l.payload(seqNo)
	if err != nil {
		return nil, err
	}
	proof, err := l.prover.InclusionProof(seqNo-1, treeSize)
	if err != nil {
		return nil, err
	}
	root, err := l.prover.Root(treeSize)
	if err != nil {
		return nil, err
	}
	return &protocol.Reply{
		LedgerID:  l.id,
		SeqNo:     seqNo,
		Payload:   append([]byte(nil), payload...),
		AuditPath: proof.Path,
		TreeSize:  treeSize,
		RootHash:  root,
	}, nil
}

func (l *Ledger) payload(seqNo uint64) ([]byte, error) {
	if p, ok := l.payloads[seqNo]; ok {
		return p, nil
	}
	if l.db != nil {
		p, err := merkletreekv.LoadPayload(l.db, seqNo)
		switch {
		case err == nil:
			return p, nil
		case !kv.IsNotFound(l.db, err):
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: seqNo %d", ErrUnknownTransaction, seqNo)
}

// ReplySince answers a read of transaction seqNo against the latest
// tree, attaching a consistency proof from the tree of trustedSize
// transactions the client already trusts.
func (l *Ledger) ReplySince(seqNo, trustedSize uint64) (*protocol.Reply, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	r, err := l.reply(seqNo, l.tree.Size())
	if err != nil {
		return nil, err
	}
	if r.Consistency, err = l.prover.ConsistencyProof(trustedSize, r.TreeSize); err != nil {
		return nil, err
	}
	return r, nil
}

// CheckpointUpdate returns the latest checkpoint with a consistency
// proof from the tree of from transactions.
func (l *Ledger) CheckpointUpdate(from uint64) (*protocol.CheckpointUpdate, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	cp := l.tree.Checkpoint()
	proof, err := l.prover.ConsistencyProof(from, cp.TreeSize)
	if err != nil {
		return nil, err
	}
	return &protocol.CheckpointUpdate{LedgerID: l.id, Checkpoint: cp, Proof: proof}, nil
}
