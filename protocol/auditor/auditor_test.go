package auditor

import (
	"fmt"
	"testing"

	"github.com/credledger/credledger-go/crypto/hashers/rfc6962"
	"github.com/credledger/credledger-go/merkletree"
	p "github.com/credledger/credledger-go/protocol"
	"github.com/credledger/credledger-go/protocol/ledger"
)

func newLedger(t *testing.T, txns ...string) *ledger.Ledger {
	l, err := ledger.New("sovrin-main-domain", rfc6962.New(), merkletree.NewMemArchive())
	if err != nil {
		t.Fatal(err)
	}
	appendTxns(t, l, txns...)
	return l
}

func appendTxns(t *testing.T, l *ledger.Ledger, txns ...string) {
	for _, txn := range txns {
		if _, err := l.Append([]byte(txn)); err != nil {
			t.Fatal(err)
		}
	}
}

func numbered(from, to int) []string {
	var txns []string
	for i := from; i <= to; i++ {
		txns = append(txns, fmt.Sprintf("txn-%d", i))
	}
	return txns
}

func TestUpdateAdvances(t *testing.T) {
	l := newLedger(t, numbered(1, 3)...)
	pinned := l.Checkpoint()
	a := New(rfc6962.New(), pinned)

	appendTxns(t, l, numbered(4, 7)...)
	u, err := l.CheckpointUpdate(pinned.TreeSize)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Update(u); err != nil {
		t.Fatal("Expect", nil, "got", err)
	}
	if !a.VerifiedCheckpoint().Equal(l.Checkpoint()) {
		t.Fatal("Expect", l.Checkpoint(), "got", a.VerifiedCheckpoint())
	}
	if !a.TrustedCheckpoint().Equal(pinned) {
		t.Fatal("Expect", pinned, "got", a.TrustedCheckpoint())
	}

	// The same checkpoint again is a no-op.
	u, _ = l.CheckpointUpdate(l.Checkpoint().TreeSize)
	if err := a.Update(u); err != nil {
		t.Fatal("Expect", nil, "got", err)
	}
	if h := a.History(); len(h) != 2 {
		t.Fatal("Expect", 2, "got", len(h))
	}
}

func TestUpdateFromEmptyPin(t *testing.T) {
	h := rfc6962.New()
	a := New(h, merkletree.Checkpoint{TreeSize: 0, RootHash: h.HashEmpty()})
	l := newLedger(t, numbered(1, 9)...)
	u, err := l.CheckpointUpdate(0)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Update(u); err != nil {
		t.Fatal("Expect", nil, "got", err)
	}
}

func TestHistoryIsMonotonic(t *testing.T) {
	l := newLedger(t, "genesis")
	a := New(rfc6962.New(), l.Checkpoint())

	for round := 0; round < 6; round++ {
		appendTxns(t, l, numbered(1, round+1)...)
		u, err := l.CheckpointUpdate(a.VerifiedCheckpoint().TreeSize)
		if err != nil {
			t.Fatal(err)
		}
		if err := a.Update(u); err != nil {
			t.Fatal(err)
		}
	}

	// A stale update is rejected.
	stale := newLedger(t, "genesis", "txn-1")
	u, _ := stale.CheckpointUpdate(0)
	if err := a.Update(u); err != p.CheckBadCheckpoint {
		t.Fatal("Expect", p.CheckBadCheckpoint, "got", err)
	}

	history := a.History()
	if len(history) != 7 {
		t.Fatal("Expect", 7, "got", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i].TreeSize <= history[i-1].TreeSize {
			t.Fatal("Expect increasing tree sizes, got", history)
		}
	}
}

func TestUpdateRejectsForks(t *testing.T) {
	honest := newLedger(t, numbered(1, 5)...)
	pinned := honest.Checkpoint()

	// The fork shares the first three transactions only.
	fork := newLedger(t, numbered(1, 3)...)
	appendTxns(t, fork, "forged-4", "forged-5")
	appendTxns(t, fork, numbered(6, 8)...)

	tests := []struct {
		name string
		u    func() *p.CheckpointUpdate
		want error
	}{
		{"rewritten history", func() *p.CheckpointUpdate {
			u, _ := fork.CheckpointUpdate(5)
			return u
		}, p.CheckBadConsistency},
		{"same size, different root", func() *p.CheckpointUpdate {
			f := newLedger(t, numbered(1, 4)...)
			appendTxns(t, f, "forged-5")
			u, _ := f.CheckpointUpdate(5)
			return u
		}, p.CheckBadCheckpoint},
		{"proof from another size", func() *p.CheckpointUpdate {
			l := newLedger(t, numbered(1, 8)...)
			u, _ := l.CheckpointUpdate(4)
			return u
		}, p.CheckBadConsistency},
		{"truncated root", func() *p.CheckpointUpdate {
			l := newLedger(t, numbered(1, 8)...)
			u, _ := l.CheckpointUpdate(5)
			u.Checkpoint.RootHash = u.Checkpoint.RootHash[:20]
			return u
		}, p.CheckHashMismatch},
		{"missing proof", func() *p.CheckpointUpdate {
			l := newLedger(t, numbered(1, 8)...)
			u, _ := l.CheckpointUpdate(5)
			u.Proof = nil
			return u
		}, p.ErrMalformedMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(rfc6962.New(), pinned)
			if err := a.Update(tt.u()); err != tt.want {
				t.Fatal("Expect", tt.want, "got", err)
			}
			if !a.VerifiedCheckpoint().Equal(pinned) || len(a.History()) != 1 {
				t.Fatal("Expect auditor state to be unchanged")
			}
		})
	}
	if err := New(rfc6962.New(), pinned).Update(nil); err != p.ErrMalformedMessage {
		t.Fatal("Expect", p.ErrMalformedMessage, "got", err)
	}
}

func TestVerifyReply(t *testing.T) {
	l := newLedger(t, numbered(1, 6)...)
	a := New(rfc6962.New(), l.Checkpoint())

	for seqNo := uint64(1); seqNo <= 6; seqNo++ {
		r, err := l.Reply(seqNo, 0)
		if err != nil {
			t.Fatal(err)
		}
		if err := a.VerifyReply(r); err != nil {
			t.Fatal("Expect", nil, "got", err)
		}
	}

	r, _ := l.Reply(3, 0)
	r.Payload = []byte("txn-tampered")
	if err := a.VerifyReply(r); err != p.CheckBadInclusion {
		t.Fatal("Expect", p.CheckBadInclusion, "got", err)
	}

	r, _ = l.Reply(3, 0)
	r.SeqNo = 4
	if err := a.VerifyReply(r); err != p.CheckBadInclusion {
		t.Fatal("Expect", p.CheckBadInclusion, "got", err)
	}

	r, _ = l.Reply(3, 0)
	r.AuditPath = r.AuditPath[1:]
	if err := a.VerifyReply(r); err != p.CheckBadInclusion {
		t.Fatal("Expect", p.CheckBadInclusion, "got", err)
	}

	if err := a.VerifyReply(&p.Reply{LedgerID: "x"}); err != p.ErrMalformedMessage {
		t.Fatal("Expect", p.ErrMalformedMessage, "got", err)
	}
}

func TestVerifyReplyAgainstNewerTree(t *testing.T) {
	l := newLedger(t, numbered(1, 4)...)
	pinned := l.Checkpoint()
	a := New(rfc6962.New(), pinned)
	appendTxns(t, l, numbered(5, 9)...)

	r, _ := l.Reply(7, 0)
	if err := a.VerifyReply(r); err != p.CheckBadCheckpoint {
		t.Fatal("Expect", p.CheckBadCheckpoint, "got", err)
	}

	r, err := l.ReplySince(7, pinned.TreeSize)
	if err != nil {
		t.Fatal(err)
	}
	bad := *r
	bad.Payload = []byte("txn-tampered")
	if err := a.VerifyReply(&bad); err != p.CheckBadInclusion {
		t.Fatal("Expect", p.CheckBadInclusion, "got", err)
	}
	if !a.VerifiedCheckpoint().Equal(pinned) {
		t.Fatal("Expect a failed reply to leave the checkpoint at", pinned)
	}

	if err := a.VerifyReply(r); err != nil {
		t.Fatal("Expect", nil, "got", err)
	}
	if !a.VerifiedCheckpoint().Equal(l.Checkpoint()) {
		t.Fatal("Expect", l.Checkpoint(), "got", a.VerifiedCheckpoint())
	}
}

func TestComputeLedgerIdentity(t *testing.T) {
	h := rfc6962.New()
	l := newLedger(t, "a", "b", "c")
	id := ComputeLedgerIdentity(h, l.Checkpoint())
	if id != ComputeLedgerIdentity(h, l.Checkpoint()) {
		t.Fatal("Expect a deterministic identity")
	}
	if len(id) != 2*h.Size() {
		t.Fatal("Expect", 2*h.Size(), "got", len(id))
	}
	appendTxns(t, l, "d")
	if id == ComputeLedgerIdentity(h, l.Checkpoint()) {
		t.Fatal("Expect different checkpoints to have different identities")
	}
}
