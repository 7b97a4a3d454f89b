// Package blake3 implements the RFC 6962 tree hashing strategy with
// BLAKE3 (256-bit output) as the hash algorithm.
package blake3

import (
	"github.com/credledger/credledger-go/crypto/hashers"
	"github.com/zeebo/blake3"
)

// BLAKE3_256 is the identity of the hashing strategy.
const BLAKE3_256 = "RFC6962-BLAKE3-256"

const size = 32

func init() {
	hashers.RegisterHasher(BLAKE3_256, New, hashers.KnownAnswer{
		Empty:         "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262",
		EmptyLeaf:     "2d3adedff11b61f14c886e35afa036736dcd87a74d27b5c1510225d0f592e213",
		EmptyChildren: "79434797638924c3bc1613de5f38a0ccfe513fc4ec1a8ba97f9303cfa875c103",
	})
}

type hasher struct{}

// New returns an instance of RFC6962-BLAKE3-256.
func New() hashers.TreeHasher {
	return hasher{}
}

func (hasher) ID() string {
	return BLAKE3_256
}

func (hasher) Size() int {
	return size
}

func (hasher) Digest(ms ...[]byte) []byte {
	h := blake3.New()
	for _, m := range ms {
		h.Write(m)
	}
	return h.Sum(nil)[:size]
}

func (th hasher) HashEmpty() []byte {
	return th.Digest()
}

func (th hasher) HashLeaf(leaf []byte) []byte {
	return th.Digest([]byte{hashers.LeafPrefix}, leaf)
}

func (th hasher) HashChildren(left, right []byte) []byte {
	return th.Digest([]byte{hashers.NodePrefix}, left, right)
}
