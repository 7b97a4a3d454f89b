// Package merkletreekv persists ledger audit state to a kv.DB: the
// leaf archive a Prover reads, the trusted checkpoint of each ledger
// and compact tree snapshots.
package merkletreekv

import "encoding/binary"

// Key prefixes separating the record types in a shared database.
const (
	// LeafIdentifier prefixes a leaf hash, keyed by big-endian index
	// so leaves iterate in order.
	LeafIdentifier = 'L'
	// SizeIdentifier is the key of the archive size.
	SizeIdentifier = 'N'
	// CheckpointIdentifier prefixes a ledger's trusted checkpoint.
	CheckpointIdentifier = 'C'
	// FrontierIdentifier prefixes a ledger's compact tree snapshot.
	FrontierIdentifier = 'F'
	// PayloadIdentifier prefixes a transaction payload, keyed by
	// big-endian sequence number.
	PayloadIdentifier = 'P'
)

func prefixedKey(id byte, suffix []byte) []byte {
	key := make([]byte, 0, 1+len(suffix))
	key = append(key, id)
	return append(key, suffix...)
}

func uint64Bytes(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
