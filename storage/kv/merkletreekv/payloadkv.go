package merkletreekv

import (
	"github.com/credledger/credledger-go/storage/kv"
)

// StorePayload stores the payload of transaction seqNo.
func StorePayload(db kv.DB, seqNo uint64, payload []byte) error {
	return db.Put(payloadKey(seqNo), payload)
}

// LoadPayload loads the payload of transaction seqNo. It returns db's
// not-found error if none was stored.
func LoadPayload(db kv.DB, seqNo uint64) ([]byte, error) {
	return db.Get(payloadKey(seqNo))
}

func payloadKey(seqNo uint64) []byte {
	return prefixedKey(PayloadIdentifier, uint64Bytes(seqNo))
}
