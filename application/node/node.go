// Package node implements a ledger node that keeps one ledger in a
// leveldb database and produces the checkpoint updates and replies
// ledger clients verify.
package node

import (
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/credledger/credledger-go/application"
	"github.com/credledger/credledger-go/crypto/hashers"
	_ "github.com/credledger/credledger-go/crypto/hashers/blake3"
	_ "github.com/credledger/credledger-go/crypto/hashers/rfc6962"
	"github.com/credledger/credledger-go/merkletree"
	"github.com/credledger/credledger-go/protocol"
	"github.com/credledger/credledger-go/protocol/ledger"
	"github.com/credledger/credledger-go/storage/kv"
	"github.com/credledger/credledger-go/storage/kv/leveldbkv"
)

// A Node wraps a persistent ledger.Ledger with its database,
// snapshot policy and logging.
type Node struct {
	db     kv.DB
	ledger *ledger.Ledger
	hash   string
	logger *application.Logger

	snapshotEvery uint64
	mu            sync.Mutex
	unsnapshotted uint64
}

// New opens the node's database and the ledger in it.
func New(conf *Config, logger *application.Logger) (*Node, error) {
	th, err := hashers.NewTreeHasher(conf.Hash)
	if err != nil {
		return nil, err
	}
	if err := hashers.SelfCheck(th); err != nil {
		return nil, err
	}
	db, err := leveldbkv.OpenDB(conf.GetDatabasePath())
	if err != nil {
		return nil, err
	}
	l, err := ledger.Open(db, conf.LedgerID, th)
	if err != nil {
		logger.Error("Cannot open ledger", "ledger", conf.LedgerID, "error", err)
		db.Close()
		return nil, err
	}
	cp := l.Checkpoint()
	logger.Debug("Opened ledger", "ledger", conf.LedgerID, "hash", conf.Hash,
		"size", cp.TreeSize, "root", hex.EncodeToString(cp.RootHash))
	return &Node{
		db:            db,
		ledger:        l,
		hash:          conf.Hash,
		logger:        logger,
		snapshotEvery: conf.SnapshotEvery,
	}, nil
}

// Append adds the transactions in order and returns the checkpoint
// after the last one. It stops at the first failure.
func (n *Node) Append(payloads ...[]byte) (merkletree.Checkpoint, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	cp := n.ledger.Checkpoint()
	for _, p := range payloads {
		next, err := n.ledger.Append(p)
		if err != nil {
			n.logger.Error("Cannot append transaction", "ledger", n.ledger.ID(),
				"seqNo", cp.TreeSize+1, "error", err)
			return cp, err
		}
		cp = next
		n.unsnapshotted++
	}
	if n.unsnapshotted > 0 && n.unsnapshotted >= n.snapshotEvery {
		if err := n.snapshot(); err != nil {
			return cp, err
		}
	}
	n.logger.Info("Appended transactions", "ledger", n.ledger.ID(), "count", len(payloads),
		"size", cp.TreeSize, "root", hex.EncodeToString(cp.RootHash))
	return cp, nil
}

func (n *Node) snapshot() error {
	if err := n.ledger.Snapshot(); err != nil {
		n.logger.Error("Cannot snapshot tree", "ledger", n.ledger.ID(), "error", err)
		return err
	}
	n.unsnapshotted = 0
	return nil
}

// Checkpoint returns the ledger's latest checkpoint.
func (n *Node) Checkpoint() merkletree.Checkpoint {
	return n.ledger.Checkpoint()
}

// Hash returns the id of the tree hashing strategy of the node's ledger.
func (n *Node) Hash() string {
	return n.hash
}

// Reply answers a read of transaction seqNo against the latest tree.
func (n *Node) Reply(seqNo uint64) (*protocol.Reply, error) {
	r, err := n.ledger.Reply(seqNo, 0)
	if err != nil {
		return nil, fmt.Errorf("ledger %s: %w", n.ledger.ID(), err)
	}
	return r, nil
}

// ReplySince answers a read of transaction seqNo against the latest
// tree, with a consistency proof from the tree of trustedSize
// transactions. A trustedSize of 0 is the empty tree.
func (n *Node) ReplySince(seqNo, trustedSize uint64) (*protocol.Reply, error) {
	r, err := n.ledger.ReplySince(seqNo, trustedSize)
	if err != nil {
		return nil, fmt.Errorf("ledger %s: %w", n.ledger.ID(), err)
	}
	return r, nil
}

// CheckpointUpdate returns the latest checkpoint with a consistency
// proof from the tree of from transactions.
func (n *Node) CheckpointUpdate(from uint64) (*protocol.CheckpointUpdate, error) {
	u, err := n.ledger.CheckpointUpdate(from)
	if err != nil {
		return nil, fmt.Errorf("ledger %s: %w", n.ledger.ID(), err)
	}
	return u, nil
}

// Close snapshots any transactions appended since the last snapshot
// and closes the node's database.
func (n *Node) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.unsnapshotted > 0 {
		if err := n.snapshot(); err != nil {
			n.db.Close()
			return err
		}
	}
	return n.db.Close()
}
