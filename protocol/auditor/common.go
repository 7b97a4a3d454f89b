package auditor

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/credledger/credledger-go/crypto/hashers"
	"github.com/credledger/credledger-go/merkletree"
)

// ComputeLedgerIdentity returns the hex-encoded digest of the ledger's
// pinned checkpoint. Two ledgers with the same identity committed to
// the same history at the time they were pinned.
func ComputeLedgerIdentity(h hashers.TreeHasher, initial merkletree.Checkpoint) string {
	size := make([]byte, 8)
	binary.BigEndian.PutUint64(size, initial.TreeSize)
	return hex.EncodeToString(h.Digest([]byte(h.ID()), size, initial.RootHash))
}
