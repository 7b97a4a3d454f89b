package merkletreekv

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/credledger/credledger-go/merkletree"
	"github.com/credledger/credledger-go/storage/kv"
)

// Archive is a merkletree.LeafStore kept in a kv.DB.
// One database holds the archive of a single ledger.
type Archive struct {
	db kv.DB

	mu   sync.RWMutex
	size uint64
}

var _ merkletree.LeafStore = (*Archive)(nil)

// NewArchive opens the archive stored in db, which may be empty.
func NewArchive(db kv.DB) (*Archive, error) {
	a := &Archive{db: db}
	buf, err := db.Get([]byte{SizeIdentifier})
	switch {
	case kv.IsNotFound(db, err):
		return a, nil
	case err != nil:
		return nil, err
	case len(buf) != 8:
		return nil, fmt.Errorf("%w: archive size record of %d bytes",
			merkletree.ErrCorruptedTreeState, len(buf))
	}
	a.size = binary.BigEndian.Uint64(buf)
	return a, nil
}

func leafKey(index uint64) []byte {
	return prefixedKey(LeafIdentifier, uint64Bytes(index))
}

// Append stores leafHash at the next index. The leaf and the new size
// are written in one batch.
func (a *Archive) Append(leafHash []byte) (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	wb := a.db.NewBatch()
	wb.Put(leafKey(a.size), leafHash)
	wb.Put([]byte{SizeIdentifier}, uint64Bytes(a.size+1))
	if err := a.db.Write(wb); err != nil {
		return a.size, err
	}
	a.size++
	return a.size, nil
}

func (a *Archive) Size() (uint64, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.size, nil
}

func (a *Archive) LeafHashes(start, end uint64) ([][]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if start > end || end > a.size {
		return nil, fmt.Errorf("%w: range [%d, %d) of %d leaves",
			merkletree.ErrIndexOutOfRange, start, end, a.size)
	}

	hashes := make([][]byte, 0, end-start)
	iter := a.db.NewIterator(&kv.Range{Start: leafKey(start), Limit: leafKey(end)})
	for iter.Next() {
		hashes = append(hashes, append([]byte(nil), iter.Value()...))
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return nil, err
	}
	if uint64(len(hashes)) != end-start {
		return nil, fmt.Errorf("%w: found %d of %d leaves in [%d, %d)",
			merkletree.ErrCorruptedTreeState, len(hashes), end-start, start, end)
	}
	return hashes, nil
}
