// Package rfc6962 implements the Certificate-Transparency style
// tree hashing strategy (RFC 6962, section 2.1) over a fixed-output
// hash function. The ledger network hashes with SHA-256.
//
// Importing this package registers its hashers with the
// hashers package.
package rfc6962

import (
	"crypto/sha256"
	"hash"

	"github.com/credledger/credledger-go/crypto/hashers"
	"golang.org/x/crypto/sha3"
)

const (
	// SHA256 is the identity of the RFC 6962 hashing strategy
	// with SHA-256 as the hash algorithm. This is the ledger
	// network's default.
	SHA256 = "RFC6962-SHA256"
	// SHA3_256 is the identity of the RFC 6962 hashing strategy
	// with SHA3-256 as the hash algorithm.
	SHA3_256 = "RFC6962-SHA3-256"
)

func init() {
	hashers.RegisterHasher(SHA256, New, hashers.KnownAnswer{
		Empty:         "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		EmptyLeaf:     "6e340b9cffb37a989ca544e6bb780a2c78901d3fb33738768511a30617afa01d",
		EmptyChildren: "a68ee79dc12813d134fd035c7328f7bd5ee68187735f7f0d2e451aea3ff6930f",
	})
	hashers.RegisterHasher(SHA3_256, NewSHA3, hashers.KnownAnswer{
		Empty:         "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a",
		EmptyLeaf:     "5d53469f20fef4f8eab52b88044ede69c77a6a68a60728609fc4a65ff531e7d0",
		EmptyChildren: "3228677a85a269daf00ca7c5cd7480fa44844e3e4b846613dba7034d2efe16da",
	})
}

type hasher struct {
	id      string
	size    int
	newHash func() hash.Hash
}

// New returns an instance of RFC6962-SHA256.
func New() hashers.TreeHasher {
	return &hasher{id: SHA256, size: sha256.Size, newHash: sha256.New}
}

// NewSHA3 returns an instance of RFC6962-SHA3-256.
func NewSHA3() hashers.TreeHasher {
	return &hasher{id: SHA3_256, size: 32, newHash: sha3.New256}
}

// WithHash returns an RFC 6962 hasher identified by id over the given
// hash constructor. It is meant for tests and for networks running a
// digest this package does not register; such a hasher is only
// self-checked for size and domain separation.
func WithHash(id string, newHash func() hash.Hash) hashers.TreeHasher {
	return &hasher{id: id, size: newHash().Size(), newHash: newHash}
}

func (th *hasher) ID() string {
	return th.id
}

func (th *hasher) Size() int {
	return th.size
}

func (th *hasher) Digest(ms ...[]byte) []byte {
	h := th.newHash()
	for _, m := range ms {
		h.Write(m)
	}
	return h.Sum(nil)
}

// HashEmpty computes the hash of the empty tree as H("").
func (th *hasher) HashEmpty() []byte {
	return th.Digest()
}

// HashLeaf computes the hash of a leaf as H(0x00 || leaf).
func (th *hasher) HashLeaf(leaf []byte) []byte {
	return th.Digest([]byte{hashers.LeafPrefix}, leaf)
}

// HashChildren computes the hash of an interior node as
// H(0x01 || left || right).
func (th *hasher) HashChildren(left, right []byte) []byte {
	return th.Digest([]byte{hashers.NodePrefix}, left, right)
}
