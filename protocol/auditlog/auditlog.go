// This module implements the audit log a ledger client keeps:
// one auditor per known ledger, each holding that ledger's
// verified checkpoint history.

package auditlog

import (
	"sort"
	"sync"

	"github.com/credledger/credledger-go/crypto/hashers"
	"github.com/credledger/credledger-go/merkletree"
	p "github.com/credledger/credledger-go/protocol"
	"github.com/credledger/credledger-go/protocol/auditor"
)

// An AuditLog maintains the auditors of all ledgers known to a client.
// Ledgers are independent; no state is shared between them.
type AuditLog struct {
	mu       sync.RWMutex
	auditors map[string]*auditor.Auditor
}

// New constructs an empty audit log. Each ledger must be added
// with InitLedger before it can be audited.
func New() *AuditLog {
	return &AuditLog{auditors: make(map[string]*auditor.Auditor)}
}

// IsKnownLedger reports whether the ledger id has an entry in the log.
func (l *AuditLog) IsKnownLedger(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.auditors[id]
	return ok
}

// InitLedger adds the ledger id, pinned to the initial checkpoint.
// It returns ErrAuditLog if the ledger is already known.
func (l *AuditLog) InitLedger(id string, h hashers.TreeHasher, initial merkletree.Checkpoint) error {
	if id == "" {
		return p.ErrMalformedMessage
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.auditors[id]; ok {
		return p.ErrAuditLog
	}
	l.auditors[id] = auditor.New(h, initial)
	return nil
}

func (l *AuditLog) get(id string) (*auditor.Auditor, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.auditors[id]
	if !ok {
		return nil, p.ReqUnknownLedger
	}
	return a, nil
}

// Update verifies a checkpoint update for the ledger id and, if it
// passes, records the new checkpoint. See auditor.Auditor.Update.
func (l *AuditLog) Update(id string, u *p.CheckpointUpdate) error {
	if u == nil || u.LedgerID != id {
		return p.ErrMalformedMessage
	}
	a, err := l.get(id)
	if err != nil {
		return err
	}
	return a.Update(u)
}

// VerifyReply checks a node reply for the ledger id.
// See auditor.Auditor.VerifyReply.
func (l *AuditLog) VerifyReply(id string, r *p.Reply) error {
	if r == nil || r.LedgerID != id {
		return p.ErrMalformedMessage
	}
	a, err := l.get(id)
	if err != nil {
		return err
	}
	return a.VerifyReply(r)
}

// Latest returns the verified checkpoint of the ledger id.
func (l *AuditLog) Latest(id string) (merkletree.Checkpoint, error) {
	a, err := l.get(id)
	if err != nil {
		return merkletree.Checkpoint{}, err
	}
	return a.VerifiedCheckpoint(), nil
}

// History returns the accepted checkpoints of the ledger id.
func (l *AuditLog) History(id string) ([]merkletree.Checkpoint, error) {
	a, err := l.get(id)
	if err != nil {
		return nil, err
	}
	return a.History(), nil
}

// Ledgers returns the ids of the known ledgers, sorted.
func (l *AuditLog) Ledgers() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids := make([]string, 0, len(l.auditors))
	for id := range l.auditors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
