package hashers

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrHashAlgorithmMismatch indicates that a hasher does not produce
	// the digests expected of it, either because it fails its known-answer
	// vectors or because it is not the algorithm the ledger uses.
	ErrHashAlgorithmMismatch = errors.New("[hashers] hash algorithm mismatch")
	// ErrUnknownHasher indicates that no hasher is registered under
	// the requested identifier.
	ErrUnknownHasher = errors.New("[hashers] unknown hasher")
)

// Domain separation prefixes for the Merkle audit tree.
const (
	LeafPrefix = 0x00
	NodePrefix = 0x01
)

// TreeHasher provides the hash functions of an append-only Merkle
// audit tree, and defines the way empty / leaf / interior hashes
// of the tree are constructed.
type TreeHasher interface {
	// ID returns the name of the hashing strategy.
	ID() string
	// Size returns the size of the hash output in bytes.
	Size() int
	// Digest provides a universal hash function which
	// hashes all passed byte slices. The passed slices won't be mutated.
	Digest(ms ...[]byte) []byte

	// HashEmpty computes the root hash of an empty tree as H("").
	HashEmpty() []byte

	// HashLeaf computes the hash of a leaf as H(0x00 || leaf).
	HashLeaf(leaf []byte) []byte

	// HashChildren computes the hash of an interior node as
	// H(0x01 || left || right).
	HashChildren(left, right []byte) []byte
}

// KnownAnswer holds the hex-encoded digests a correctly implemented
// hasher must produce. An empty field is not checked.
type KnownAnswer struct {
	// Empty is H("").
	Empty string
	// EmptyLeaf is H(0x00).
	EmptyLeaf string
	// EmptyChildren is H(0x01 || H("") || H("")).
	EmptyChildren string
}

type registration struct {
	newHasher func() TreeHasher
	vectors   KnownAnswer
}

var (
	mu      sync.RWMutex
	hashers = make(map[string]registration)
)

// RegisterHasher registers a hasher constructor together with its
// known-answer vectors. It panics if h is already registered.
func RegisterHasher(h string, f func() TreeHasher, vectors KnownAnswer) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := hashers[h]; ok {
		panic(fmt.Sprintf("%s is already registered", h))
	}
	hashers[h] = registration{newHasher: f, vectors: vectors}
}

// NewTreeHasher returns a new instance of the registered TreeHasher
// identified by the given string.
// If no such TreeHasher exists, it returns an error.
func NewTreeHasher(h string) (TreeHasher, error) {
	mu.RLock()
	r, ok := hashers[h]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHasher, h)
	}
	return r.newHasher(), nil
}

// Registered returns the identifiers of all registered hashers, sorted.
func Registered() []string {
	mu.RLock()
	defer mu.RUnlock()
	ids := make([]string, 0, len(hashers))
	for id := range hashers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SelfCheck recomputes the known-answer vectors registered for th's ID
// and returns ErrHashAlgorithmMismatch if any of them differs.
// A hasher that was never registered is checked only for
// output-size and domain-separation consistency.
func SelfCheck(th TreeHasher) error {
	empty := th.HashEmpty()
	if len(empty) != th.Size() {
		return fmt.Errorf("%w: %s produces %d byte digests, declares %d",
			ErrHashAlgorithmMismatch, th.ID(), len(empty), th.Size())
	}
	// a leaf hash must never collide with an interior hash
	// of the same material.
	if bytes.Equal(th.HashLeaf(append(append([]byte{}, empty...), empty...)),
		th.HashChildren(empty, empty)) {
		return fmt.Errorf("%w: %s lacks leaf/node domain separation",
			ErrHashAlgorithmMismatch, th.ID())
	}

	mu.RLock()
	r, ok := hashers[th.ID()]
	mu.RUnlock()
	if !ok {
		return nil
	}

	for _, tc := range []struct {
		name string
		want string
		got  []byte
	}{
		{"empty", r.vectors.Empty, empty},
		{"empty leaf", r.vectors.EmptyLeaf, th.HashLeaf(nil)},
		{"empty children", r.vectors.EmptyChildren, th.HashChildren(empty, empty)},
	} {
		if tc.want == "" {
			continue
		}
		want, err := hex.DecodeString(tc.want)
		if err != nil {
			return fmt.Errorf("%w: %s has a malformed %s vector",
				ErrHashAlgorithmMismatch, th.ID(), tc.name)
		}
		if !bytes.Equal(want, tc.got) {
			return fmt.Errorf("%w: %s %s vector: got %x, want %x",
				ErrHashAlgorithmMismatch, th.ID(), tc.name, tc.got, want)
		}
	}
	return nil
}

// Compatible reports whether th is the hashing strategy a ledger
// announces as networkID, and that th passes its self check.
func Compatible(th TreeHasher, networkID string) error {
	if th.ID() != networkID {
		return fmt.Errorf("%w: configured %s, ledger uses %s",
			ErrHashAlgorithmMismatch, th.ID(), networkID)
	}
	return SelfCheck(th)
}
