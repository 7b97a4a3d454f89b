package merkletree

import (
	"fmt"
	"sync"
)

// LeafArchive gives read access to the ordered leaf hashes of a ledger.
// The CompactTree never stores leaves; proof generation reads them
// from an archive like this one.
type LeafArchive interface {
	Size() (uint64, error)
	// LeafHashes returns the leaf hashes in [start, end).
	LeafHashes(start, end uint64) ([][]byte, error)
}

// LeafStore is a LeafArchive that can be appended to.
// Append returns the archive size after the append.
type LeafStore interface {
	LeafArchive
	Append(leafHash []byte) (uint64, error)
}

// MemArchive is an in-memory LeafStore.
type MemArchive struct {
	mu     sync.RWMutex
	hashes [][]byte
}

var _ LeafStore = (*MemArchive)(nil)

// NewMemArchive returns an empty archive.
func NewMemArchive() *MemArchive {
	return &MemArchive{}
}

func (a *MemArchive) Append(leafHash []byte) (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hashes = append(a.hashes, append([]byte(nil), leafHash...))
	return uint64(len(a.hashes)), nil
}

func (a *MemArchive) Size() (uint64, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return uint64(len(a.hashes)), nil
}

func (a *MemArchive) LeafHashes(start, end uint64) ([][]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if start > end || end > uint64(len(a.hashes)) {
		return nil, fmt.Errorf("%w: range [%d, %d) of %d leaves",
			ErrIndexOutOfRange, start, end, len(a.hashes))
	}
	out := make([][]byte, 0, end-start)
	for _, h := range a.hashes[start:end] {
		out = append(out, append([]byte(nil), h...))
	}
	return out, nil
}
