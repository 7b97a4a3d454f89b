package node

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/credledger/credledger-go/application"
	"github.com/credledger/credledger-go/crypto/hashers/rfc6962"
	"github.com/credledger/credledger-go/merkletree"
	"github.com/credledger/credledger-go/protocol"
	"github.com/credledger/credledger-go/protocol/auditor"
	"github.com/credledger/credledger-go/storage/kv/leveldbkv"
	"github.com/credledger/credledger-go/storage/kv/merkletreekv"
)

func newTestConfig(t *testing.T, snapshotEvery uint64) *Config {
	path := filepath.Join(t.TempDir(), "ledger.toml")
	conf := NewConfig(path, "toml", "sovrin-main-domain", "ledger.db")
	conf.SnapshotEvery = snapshotEvery
	if err := conf.Save(); err != nil {
		t.Fatal(err)
	}
	loaded := new(Config)
	if err := loaded.Load(path, "toml"); err != nil {
		t.Fatal(err)
	}
	return loaded
}

func TestLoadConfig(t *testing.T) {
	conf := newTestConfig(t, 10)
	if conf.LedgerID != "sovrin-main-domain" || conf.Hash != rfc6962.SHA256 || conf.SnapshotEvery != 10 {
		t.Fatal("Unexpected config", conf.LedgerID, conf.Hash, conf.SnapshotEvery)
	}
	if conf.GetDatabasePath() != filepath.Join(filepath.Dir(conf.GetPath()), "ledger.db") {
		t.Fatal("Unexpected database path", conf.GetDatabasePath())
	}
}

func TestNodeRoundTrip(t *testing.T) {
	h := rfc6962.New()
	conf := newTestConfig(t, 4)
	n, err := New(conf, application.NewNopLogger())
	if err != nil {
		t.Fatal(err)
	}
	var payloads [][]byte
	for i := 0; i < 6; i++ {
		payloads = append(payloads, []byte(fmt.Sprintf("txn-%d", i)))
	}
	trusted, err := n.Append(payloads[:3]...)
	if err != nil {
		t.Fatal(err)
	}
	if n.unsnapshotted != 3 {
		t.Fatal("Expect", 3, "got", n.unsnapshotted)
	}
	latest, err := n.Append(payloads[3:]...)
	if err != nil {
		t.Fatal(err)
	}
	if n.unsnapshotted != 0 {
		t.Fatal("Expect a snapshot after", 4, "transactions")
	}

	u, err := n.CheckpointUpdate(trusted.TreeSize)
	if err != nil {
		t.Fatal(err)
	}
	if !merkletree.VerifyConsistencyProof(h, u.Proof, trusted.RootHash, latest.RootHash) {
		t.Fatal("Expect consistency proof to verify")
	}

	r, err := n.ReplySince(2, trusted.TreeSize)
	if err != nil {
		t.Fatal(err)
	}
	if r.Consistency == nil || !r.Checkpoint().Equal(latest) {
		t.Fatal("Unexpected reply", r)
	}
	if err := merkletree.VerifyInclusion(h, h.HashLeaf(payloads[1]), 1, r.TreeSize,
		r.AuditPath, r.RootHash); err != nil {
		t.Fatal(err)
	}
	if _, err := n.Reply(7); err == nil {
		t.Fatal("Expect an error for an unknown seqNo")
	}
	if err := n.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := New(conf, application.NewNopLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	if !reopened.Checkpoint().Equal(latest) {
		t.Fatal("Expect", latest, "got", reopened.Checkpoint())
	}
}

func TestReplySinceEmptyTree(t *testing.T) {
	h := rfc6962.New()
	n, err := New(newTestConfig(t, 4), application.NewNopLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer n.Close()
	empty := n.Checkpoint()
	if _, err := n.Append([]byte("a"), []byte("b"), []byte("c")); err != nil {
		t.Fatal(err)
	}

	a := auditor.New(h, empty)
	plain, err := n.Reply(1)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.VerifyReply(plain); err != protocol.CheckBadCheckpoint {
		t.Fatal("Expect", protocol.CheckBadCheckpoint, "got", err)
	}

	r, err := n.ReplySince(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if r.Consistency == nil || r.Consistency.OldSize != 0 || len(r.Consistency.Path) != 0 {
		t.Fatal("Unexpected consistency proof", r.Consistency)
	}
	if err := a.VerifyReply(r); err != nil {
		t.Fatal(err)
	}
	if !a.VerifiedCheckpoint().Equal(n.Checkpoint()) {
		t.Fatal("Expect", n.Checkpoint(), "got", a.VerifiedCheckpoint())
	}
}

func TestCloseSnapshots(t *testing.T) {
	conf := newTestConfig(t, 100)
	n, err := New(conf, application.NewNopLogger())
	if err != nil {
		t.Fatal(err)
	}
	cp, err := n.Append([]byte("a"), []byte("b"), []byte("c"))
	if err != nil {
		t.Fatal(err)
	}
	if err := n.Close(); err != nil {
		t.Fatal(err)
	}

	db, err := leveldbkv.OpenDB(conf.GetDatabasePath())
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	tree, err := merkletreekv.LoadFrontier(db, conf.LedgerID, rfc6962.New())
	if err != nil {
		t.Fatal(err)
	}
	if !tree.Checkpoint().Equal(cp) {
		t.Fatal("Expect", cp, "got", tree.Checkpoint())
	}
}

func TestUnknownHash(t *testing.T) {
	conf := newTestConfig(t, 1)
	conf.Hash = "no-such-hash"
	if _, err := New(conf, application.NewNopLogger()); err == nil {
		t.Fatal("Expect an error for an unknown hasher")
	}
}
