package ledger

import (
	"errors"
	"fmt"
	"testing"

	"github.com/credledger/credledger-go/crypto/hashers/rfc6962"
	"github.com/credledger/credledger-go/merkletree"
)

type failingArchive struct {
	*merkletree.MemArchive
}

func (failingArchive) Append([]byte) (uint64, error) {
	return 0, errors.New("disk full")
}

func newTestLedger(t *testing.T, n int) *Ledger {
	l, err := New("test-ledger", rfc6962.New(), merkletree.NewMemArchive())
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= n; i++ {
		if _, err := l.Append([]byte(fmt.Sprintf(`{"seqNo":%d}`, i))); err != nil {
			t.Fatal(err)
		}
	}
	return l
}

func TestAppendAndReply(t *testing.T) {
	h := rfc6962.New()
	l := newTestLedger(t, 10)
	cp := l.Checkpoint()
	if cp.TreeSize != 10 {
		t.Fatal("Expect", 10, "got", cp.TreeSize)
	}

	for seqNo := uint64(1); seqNo <= 10; seqNo++ {
		r, err := l.Reply(seqNo, 0)
		if err != nil {
			t.Fatal(err)
		}
		if err := r.Validate(); err != nil {
			t.Fatal(err)
		}
		if string(r.Payload) != fmt.Sprintf(`{"seqNo":%d}`, seqNo) {
			t.Fatal("Unexpected payload", string(r.Payload))
		}
		if !r.Checkpoint().Equal(cp) {
			t.Fatal("Expect", cp, "got", r.Checkpoint())
		}
		if err := merkletree.VerifyInclusion(h, h.HashLeaf(r.Payload), seqNo-1, r.TreeSize,
			r.AuditPath, r.RootHash); err != nil {
			t.Fatal(err)
		}
	}
}

func TestReplyAgainstOlderTree(t *testing.T) {
	h := rfc6962.New()
	l := newTestLedger(t, 3)
	old := l.Checkpoint()
	for i := 0; i < 4; i++ {
		l.Append([]byte("later"))
	}

	r, err := l.Reply(2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Checkpoint().Equal(old) {
		t.Fatal("Expect", old, "got", r.Checkpoint())
	}
	if err := merkletree.VerifyInclusion(h, h.HashLeaf(r.Payload), 1, 3, r.AuditPath, old.RootHash); err != nil {
		t.Fatal(err)
	}

	if _, err := l.Reply(4, 3); !errors.Is(err, merkletree.ErrIndexOutOfRange) {
		t.Fatal("Expect", merkletree.ErrIndexOutOfRange, "got", err)
	}
	if _, err := l.Reply(0, 3); !errors.Is(err, merkletree.ErrIndexOutOfRange) {
		t.Fatal("Expect", merkletree.ErrIndexOutOfRange, "got", err)
	}
}

func TestReplySince(t *testing.T) {
	h := rfc6962.New()
	l := newTestLedger(t, 5)
	trusted := l.Checkpoint()
	for i := 0; i < 6; i++ {
		l.Append([]byte("more"))
	}

	r, err := l.ReplySince(4, trusted.TreeSize)
	if err != nil {
		t.Fatal(err)
	}
	if r.Consistency == nil || r.Consistency.OldSize != 5 || r.Consistency.NewSize != 11 {
		t.Fatal("Unexpected consistency proof", r.Consistency)
	}
	if !merkletree.VerifyConsistencyProof(h, r.Consistency, trusted.RootHash, r.RootHash) {
		t.Fatal("Expect consistency proof to verify")
	}
}

func TestCheckpointUpdate(t *testing.T) {
	h := rfc6962.New()
	l := newTestLedger(t, 6)
	old := l.Checkpoint()
	for i := 0; i < 3; i++ {
		l.Append([]byte("more"))
	}

	u, err := l.CheckpointUpdate(old.TreeSize)
	if err != nil {
		t.Fatal(err)
	}
	if err := u.Validate(); err != nil {
		t.Fatal(err)
	}
	if err := merkletree.VerifyConsistency(h, old.TreeSize, u.Checkpoint.TreeSize,
		old.RootHash, u.Checkpoint.RootHash, u.Proof.Path); err != nil {
		t.Fatal(err)
	}
	if _, err := l.CheckpointUpdate(10); !errors.Is(err, merkletree.ErrIndexOutOfRange) {
		t.Fatal("Expect", merkletree.ErrIndexOutOfRange, "got", err)
	}
}

func TestAppendArchiveFailureLeavesTree(t *testing.T) {
	l, err := New("test-ledger", rfc6962.New(), failingArchive{merkletree.NewMemArchive()})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.Append([]byte("txn")); err == nil {
		t.Fatal("Expect archive error")
	}
	if size := l.Checkpoint().TreeSize; size != 0 {
		t.Fatal("Expect", 0, "got", size)
	}
}

func TestReopenArchive(t *testing.T) {
	archive := merkletree.NewMemArchive()
	l, err := New("test-ledger", rfc6962.New(), archive)
	if err != nil {
		t.Fatal(err)
	}
	for _, txn := range []string{"a", "b", "c"} {
		l.Append([]byte(txn))
	}

	reopened, err := New("test-ledger", rfc6962.New(), archive)
	if err != nil {
		t.Fatal(err)
	}
	if !reopened.Checkpoint().Equal(l.Checkpoint()) {
		t.Fatal("Expect", l.Checkpoint(), "got", reopened.Checkpoint())
	}
	if _, err := reopened.Reply(1, 0); !errors.Is(err, ErrUnknownTransaction) {
		t.Fatal("Expect", ErrUnknownTransaction, "got", err)
	}
}
