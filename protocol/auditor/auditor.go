// This module implements a generic ledger auditor, i.e. the
// functionality that clients need to keep a trusted view of a
// ledger's history and to check node replies against it.

package auditor

import (
	"sync"

	"github.com/credledger/credledger-go/crypto/hashers"
	"github.com/credledger/credledger-go/merkletree"
	p "github.com/credledger/credledger-go/protocol"
)

// Auditor tracks the verified checkpoint of a single ledger.
// The checkpoint only ever moves forward: to a larger tree proven
// to extend it.
type Auditor struct {
	hasher hashers.TreeHasher

	mu       sync.RWMutex
	verified merkletree.Checkpoint
	// trusted is the previous verified checkpoint, i.e. the value
	// of verified before its last update.
	trusted merkletree.Checkpoint
	history []merkletree.Checkpoint
}

// New instantiates an auditor pinned to the trusted checkpoint,
// obtained out of band or from persistent storage.
func New(h hashers.TreeHasher, trusted merkletree.Checkpoint) *Auditor {
	return &Auditor{
		hasher:   h,
		verified: trusted,
		trusted:  trusted,
		history:  []merkletree.Checkpoint{trusted},
	}
}

// Hasher returns the hasher the ledger's tree is built with.
func (a *Auditor) Hasher() hashers.TreeHasher {
	return a.hasher
}

// VerifiedCheckpoint returns the latest verified checkpoint.
func (a *Auditor) VerifiedCheckpoint() merkletree.Checkpoint {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.verified
}

// TrustedCheckpoint returns the previous verified checkpoint,
// which is the value of VerifiedCheckpoint() before it got updated.
func (a *Auditor) TrustedCheckpoint() merkletree.Checkpoint {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.trusted
}

// History returns the checkpoints accepted so far, starting with the
// pinned one. Tree sizes are strictly increasing.
func (a *Auditor) History() []merkletree.Checkpoint {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]merkletree.Checkpoint(nil), a.history...)
}

// Update verifies a checkpoint update against the verified checkpoint
// and, if it extends it, makes it the new verified checkpoint.
// An update to the very same checkpoint is accepted and changes
// nothing. On any failure the auditor's state is left untouched.
func (a *Auditor) Update(u *p.CheckpointUpdate) error {
	if u == nil || u.Validate() != nil {
		return p.ErrMalformedMessage
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.verifyExtends(u.Checkpoint, u.Proof); err != nil {
		return err
	}
	a.advance(u.Checkpoint)
	return nil
}

// VerifyReply checks that the reply's transaction is part of the
// ledger. The reply must be proven against the verified checkpoint,
// or carry a consistency proof from it; in the latter case the
// reply's checkpoint becomes the verified one once the reply checks out.
func (a *Auditor) VerifyReply(r *p.Reply) error {
	if r == nil || r.Validate() != nil {
		return p.ErrMalformedMessage
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	cp := r.Checkpoint()
	if !cp.Equal(a.verified) {
		if r.Consistency == nil {
			return p.CheckBadCheckpoint
		}
		if err := a.verifyExtends(cp, r.Consistency); err != nil {
			return err
		}
	}

	leafHash := a.hasher.HashLeaf(r.Payload)
	if err := merkletree.VerifyInclusion(a.hasher, leafHash, r.SeqNo-1, r.TreeSize,
		r.AuditPath, r.RootHash); err != nil {
		return p.CheckBadInclusion
	}
	a.advance(cp)
	return nil
}

// verifyExtends checks that cp is the verified checkpoint or a later
// one proven consistent with it.
func (a *Auditor) verifyExtends(cp merkletree.Checkpoint, proof *merkletree.ConsistencyProof) error {
	switch {
	case len(cp.RootHash) != a.hasher.Size():
		return p.CheckHashMismatch
	case cp.TreeSize < a.verified.TreeSize:
		return p.CheckBadCheckpoint
	case cp.TreeSize == a.verified.TreeSize && !cp.Equal(a.verified):
		return p.CheckBadCheckpoint
	case proof.OldSize != a.verified.TreeSize || proof.NewSize != cp.TreeSize:
		return p.CheckBadConsistency
	}
	if err := merkletree.VerifyConsistency(a.hasher, a.verified.TreeSize, cp.TreeSize,
		a.verified.RootHash, cp.RootHash, proof.Path); err != nil {
		return p.CheckBadConsistency
	}
	return nil
}

func (a *Auditor) advance(cp merkletree.Checkpoint) {
	if cp.TreeSize == a.verified.TreeSize {
		return
	}
	a.trusted = a.verified
	a.verified = cp
	a.history = append(a.history, cp)
}
