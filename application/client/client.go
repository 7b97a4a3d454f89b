// Package client implements a ledger client that audits the ledgers
// listed in its configuration and keeps their trusted checkpoints in
// a leveldb database across restarts.
package client

import (
	"encoding/hex"
	"fmt"

	"github.com/credledger/credledger-go/application"
	"github.com/credledger/credledger-go/crypto/hashers"
	_ "github.com/credledger/credledger-go/crypto/hashers/blake3"
	_ "github.com/credledger/credledger-go/crypto/hashers/rfc6962"
	"github.com/credledger/credledger-go/merkletree"
	"github.com/credledger/credledger-go/protocol"
	"github.com/credledger/credledger-go/protocol/auditlog"
	"github.com/credledger/credledger-go/protocol/auditor"
	"github.com/credledger/credledger-go/storage/kv"
	"github.com/credledger/credledger-go/storage/kv/leveldbkv"
	"github.com/credledger/credledger-go/storage/kv/merkletreekv"
)

// Client audits a set of ledgers. It is safe for concurrent use.
type Client struct {
	db     kv.DB
	log    *auditlog.AuditLog
	logger *application.Logger
	// identities maps a ledger id to the identity of its pinned
	// checkpoint. Persisted checkpoints are stored under it.
	identities map[string]string
}

// New opens the client's database and sets up an auditor for each
// configured ledger. A ledger starts from its persisted checkpoint when
// that checkpoint was verified from the currently pinned one, and from
// the pinned checkpoint otherwise.
func New(conf *Config, logger *application.Logger) (*Client, error) {
	return open(conf, logger, nil)
}

// NewReadOnly opens the client's database read-only. The trusted
// checkpoints can be read but not advanced; the database must exist.
func NewReadOnly(conf *Config, logger *application.Logger) (*Client, error) {
	return open(conf, logger, &leveldbkv.Options{ReadOnly: true})
}

func open(conf *Config, logger *application.Logger, opts *leveldbkv.Options) (*Client, error) {
	db, err := leveldbkv.Open(conf.GetDatabasePath(), opts)
	if err != nil {
		return nil, err
	}
	c, err := newClient(conf, db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func newClient(conf *Config, db kv.DB, logger *application.Logger) (*Client, error) {
	c := &Client{
		db:         db,
		log:        auditlog.New(),
		logger:     logger,
		identities: make(map[string]string, len(conf.Ledgers)),
	}
	for _, lc := range conf.Ledgers {
		th, err := hashers.NewTreeHasher(lc.Hash)
		if err != nil {
			return nil, fmt.Errorf("ledger %s: %w", lc.ID, err)
		}
		if lc.PinnedHash != "" {
			err = hashers.Compatible(th, lc.PinnedHash)
		} else {
			err = hashers.SelfCheck(th)
		}
		if err != nil {
			return nil, fmt.Errorf("ledger %s: %w", lc.ID, err)
		}

		identity := auditor.ComputeLedgerIdentity(th, lc.InitCheckpoint)
		trusted, err := c.restoreCheckpoint(lc, identity)
		if err != nil {
			return nil, err
		}
		if err := c.log.InitLedger(lc.ID, th, trusted); err != nil {
			return nil, fmt.Errorf("ledger %s: %w", lc.ID, err)
		}
		c.identities[lc.ID] = identity
		logger.Debug("Auditing ledger", "ledger", lc.ID, "hash", lc.Hash, "identity", identity,
			"size", trusted.TreeSize, "root", hex.EncodeToString(trusted.RootHash))
	}
	return c, nil
}

// restoreCheckpoint returns the persisted checkpoint of the ledger if
// it was stored under identity, and the pinned checkpoint otherwise.
func (c *Client) restoreCheckpoint(lc *LedgerConfig, identity string) (merkletree.Checkpoint, error) {
	pinned := lc.InitCheckpoint
	stored, storedIdentity, err := merkletreekv.LoadCheckpoint(c.db, lc.ID)
	switch {
	case kv.IsNotFound(c.db, err):
		return pinned, nil
	case err != nil:
		c.logger.Error("Cannot load checkpoint", "ledger", lc.ID, "error", err)
		return merkletree.Checkpoint{}, err
	case storedIdentity != identity:
		c.logger.Warn("Discarding stored checkpoint verified from another pin",
			"ledger", lc.ID, "stored", stored.String(), "pinned", pinned.String())
		return pinned, nil
	case stored.TreeSize < pinned.TreeSize,
		stored.TreeSize == pinned.TreeSize && !stored.Equal(pinned):
		c.logger.Warn("Discarding stored checkpoint that contradicts the pinned one",
			"ledger", lc.ID, "stored", stored.String(), "pinned", pinned.String())
		return pinned, nil
	}
	return stored, nil
}

// UpdateCheckpoint verifies a checkpoint update and, if it passes,
// persists the ledger's new checkpoint.
func (c *Client) UpdateCheckpoint(u *protocol.CheckpointUpdate) error {
	if u == nil {
		return protocol.ErrMalformedMessage
	}
	if err := c.log.Update(u.LedgerID, u); err != nil {
		c.logger.Warn("Rejected checkpoint update", "ledger", u.LedgerID,
			"size", u.Checkpoint.TreeSize, "error", err)
		return err
	}
	return c.persist(u.LedgerID)
}

// VerifyReply checks a node reply. A reply carrying a consistency
// proof may advance the ledger's checkpoint, which is then persisted.
func (c *Client) VerifyReply(r *protocol.Reply) error {
	if r == nil {
		return protocol.ErrMalformedMessage
	}
	before, err := c.log.Latest(r.LedgerID)
	if err != nil {
		return err
	}
	if err := c.log.VerifyReply(r.LedgerID, r); err != nil {
		c.logger.Warn("Rejected reply", "ledger", r.LedgerID, "seqNo", r.SeqNo,
			"size", r.TreeSize, "error", err)
		return err
	}
	c.logger.Debug("Verified reply", "ledger", r.LedgerID, "seqNo", r.SeqNo)
	if r.Checkpoint().Equal(before) {
		return nil
	}
	return c.persist(r.LedgerID)
}

func (c *Client) persist(id string) error {
	cp, err := c.log.Latest(id)
	if err != nil {
		return err
	}
	if err := merkletreekv.StoreCheckpoint(c.db, id, c.identities[id], cp); err != nil {
		c.logger.Error("Cannot store checkpoint", "ledger", id, "error", err)
		return err
	}
	c.logger.Info("Trusted checkpoint", "ledger", id,
		"size", cp.TreeSize, "root", hex.EncodeToString(cp.RootHash))
	return nil
}

// Checkpoint returns the trusted checkpoint of the ledger id.
func (c *Client) Checkpoint(id string) (merkletree.Checkpoint, error) {
	return c.log.Latest(id)
}

// Ledgers returns the ids of the audited ledgers.
func (c *Client) Ledgers() []string {
	return c.log.Ledgers()
}

// Close closes the client's database.
func (c *Client) Close() error {
	return c.db.Close()
}
