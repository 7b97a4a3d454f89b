package merkletreekv

import (
	"testing"

	"github.com/credledger/credledger-go/storage/kv"
	"github.com/credledger/credledger-go/storage/kv/leveldbkv"
)

// withDB runs f against a fresh leveldb database in a temporary directory.
func withDB(t *testing.T, f func(db kv.DB)) {
	t.Helper()
	db, err := leveldbkv.Open(t.TempDir(), &leveldbkv.Options{NoSync: true})
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	f(db)
}
