package auditlog

import (
	"sync"
	"testing"

	"github.com/credledger/credledger-go/crypto/hashers/rfc6962"
	"github.com/credledger/credledger-go/merkletree"
	p "github.com/credledger/credledger-go/protocol"
	"github.com/credledger/credledger-go/protocol/ledger"
)

func newLedger(t *testing.T, id string, n int) *ledger.Ledger {
	l, err := ledger.New(id, rfc6962.New(), merkletree.NewMemArchive())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		if _, err := l.Append([]byte{byte(i)}); err != nil {
			t.Fatal(err)
		}
	}
	return l
}

func TestInitLedger(t *testing.T) {
	log := New()
	l := newLedger(t, "domain", 3)
	if err := log.InitLedger("domain", rfc6962.New(), l.Checkpoint()); err != nil {
		t.Fatal(err)
	}
	if !log.IsKnownLedger("domain") {
		t.Fatal("Expect ledger to be known")
	}
	if err := log.InitLedger("domain", rfc6962.New(), l.Checkpoint()); err != p.ErrAuditLog {
		t.Fatal("Expected an ErrAuditLog when inserting an existing ledger, got", err)
	}
	if err := log.InitLedger("", rfc6962.New(), l.Checkpoint()); err != p.ErrMalformedMessage {
		t.Fatal("Expect", p.ErrMalformedMessage, "got", err)
	}
}

func TestUnknownLedger(t *testing.T) {
	log := New()
	l := newLedger(t, "pool", 3)
	u, _ := l.CheckpointUpdate(0)
	if err := log.Update("pool", u); err != p.ReqUnknownLedger {
		t.Fatal("Expect", p.ReqUnknownLedger, "got", err)
	}
	if _, err := log.Latest("pool"); err != p.ReqUnknownLedger {
		t.Fatal("Expect", p.ReqUnknownLedger, "got", err)
	}
	r, _ := l.Reply(1, 0)
	if err := log.VerifyReply("pool", r); err != p.ReqUnknownLedger {
		t.Fatal("Expect", p.ReqUnknownLedger, "got", err)
	}
}

func TestLedgersAreIndependent(t *testing.T) {
	h := rfc6962.New()
	domain := newLedger(t, "domain", 4)
	pool := newLedger(t, "pool", 2)

	log := New()
	log.InitLedger("domain", h, domain.Checkpoint())
	log.InitLedger("pool", h, pool.Checkpoint())
	if ids := log.Ledgers(); len(ids) != 2 || ids[0] != "domain" || ids[1] != "pool" {
		t.Fatal("Unexpected ledgers", ids)
	}

	for i := 0; i < 5; i++ {
		domain.Append([]byte("more"))
	}
	u, _ := domain.CheckpointUpdate(4)
	if err := log.Update("domain", u); err != nil {
		t.Fatal(err)
	}
	// An update for one ledger cannot be applied to another.
	if err := log.Update("pool", u); err != p.ErrMalformedMessage {
		t.Fatal("Expect", p.ErrMalformedMessage, "got", err)
	}

	latest, _ := log.Latest("domain")
	if !latest.Equal(domain.Checkpoint()) {
		t.Fatal("Expect", domain.Checkpoint(), "got", latest)
	}
	latest, _ = log.Latest("pool")
	if !latest.Equal(pool.Checkpoint()) {
		t.Fatal("Expect", pool.Checkpoint(), "got", latest)
	}

	r, _ := domain.Reply(7, 0)
	if err := log.VerifyReply("domain", r); err != nil {
		t.Fatal(err)
	}
	history, _ := log.History("domain")
	if len(history) != 2 {
		t.Fatal("Expect", 2, "got", len(history))
	}
}

func TestConcurrentLedgers(t *testing.T) {
	h := rfc6962.New()
	ids := []string{"a", "b", "c", "d"}
	log := New()
	ledgers := make(map[string]*ledger.Ledger)
	for _, id := range ids {
		ledgers[id] = newLedger(t, id, 1)
		log.InitLedger(id, h, ledgers[id].Checkpoint())
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(ids))
	for _, id := range ids {
		wg.Add(1)
		go func(l *ledger.Ledger) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				from := l.Checkpoint().TreeSize
				l.Append([]byte{byte(i)})
				u, err := l.CheckpointUpdate(from)
				if err == nil {
					err = log.Update(l.ID(), u)
				}
				if err != nil {
					errs <- err
					return
				}
			}
		}(ledgers[id])
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
	for _, id := range ids {
		if latest, _ := log.Latest(id); latest.TreeSize != 21 {
			t.Fatal("Expect", 21, "got", latest.TreeSize)
		}
	}
}
