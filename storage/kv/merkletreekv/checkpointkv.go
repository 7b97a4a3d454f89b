package merkletreekv

import (
	"github.com/credledger/credledger-go/merkletree"
	"github.com/credledger/credledger-go/storage/kv"
	"github.com/fxamacker/cbor/v2"
)

var encMode, _ = cbor.CoreDetEncOptions().EncMode()

// checkpointRecord ties a trusted checkpoint to the pinned checkpoint
// it was verified from, named by its ledger identity.
type checkpointRecord struct {
	Identity   string                `cbor:"1,keyasint"`
	Checkpoint merkletree.Checkpoint `cbor:"2,keyasint"`
}

// StoreCheckpoint stores cp as the trusted checkpoint of ledgerID,
// verified from the pinned checkpoint whose ledger identity is identity.
func StoreCheckpoint(db kv.DB, ledgerID, identity string, cp merkletree.Checkpoint) error {
	buf, err := encMode.Marshal(checkpointRecord{Identity: identity, Checkpoint: cp})
	if err != nil {
		return err
	}
	wb := db.NewBatch()
	wb.Put(checkpointKey(ledgerID), buf)
	return db.Write(wb)
}

// LoadCheckpoint loads the trusted checkpoint of ledgerID together with
// the identity it was stored under. It returns db's not-found error if
// none was stored.
func LoadCheckpoint(db kv.DB, ledgerID string) (merkletree.Checkpoint, string, error) {
	buf, err := db.Get(checkpointKey(ledgerID))
	if err != nil {
		return merkletree.Checkpoint{}, "", err
	}
	var rec checkpointRecord
	if err := cbor.Unmarshal(buf, &rec); err != nil {
		return merkletree.Checkpoint{}, "", err
	}
	return rec.Checkpoint, rec.Identity, nil
}

func checkpointKey(ledgerID string) []byte {
	return prefixedKey(CheckpointIdentifier, []byte(ledgerID))
}
