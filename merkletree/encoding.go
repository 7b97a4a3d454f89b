package merkletree

import (
	"fmt"

	"github.com/tchajed/marshal"
)

// Proofs and frontiers are encoded as little-endian u64 fields, with
// every byte string prefixed by its length.

// maxPathLen bounds the number of elements a decoded path may claim.
// A 2^64 leaf tree has 64 levels and a consistency proof needs at most
// two elements per level.
const maxPathLen = 128

func readInt(b []byte) (uint64, []byte, error) {
	if len(b) < 8 {
		return 0, nil, fmt.Errorf("%w: truncated integer", ErrMalformedEncoding)
	}
	v, rem := marshal.ReadInt(b)
	return v, rem, nil
}

func readBytes(b []byte) ([]byte, []byte, error) {
	n, b, err := readInt(b)
	if err != nil {
		return nil, nil, err
	}
	if uint64(len(b)) < n {
		return nil, nil, fmt.Errorf("%w: truncated byte string", ErrMalformedEncoding)
	}
	data, rem := marshal.ReadBytesCopy(b, n)
	return data, rem, nil
}

func writeBytes(b, data []byte) []byte {
	b = marshal.WriteInt(b, uint64(len(data)))
	return marshal.WriteBytes(b, data)
}

func writePath(b []byte, path [][]byte) []byte {
	b = marshal.WriteInt(b, uint64(len(path)))
	for _, e := range path {
		b = writeBytes(b, e)
	}
	return b
}

func readPath(b []byte) ([][]byte, []byte, error) {
	n, b, err := readInt(b)
	if err != nil {
		return nil, nil, err
	}
	if n > maxPathLen {
		return nil, nil, fmt.Errorf("%w: path of %d elements", ErrMalformedEncoding, n)
	}
	path := make([][]byte, 0, n)
	for i := uint64(0); i < n; i++ {
		var e []byte
		if e, b, err = readBytes(b); err != nil {
			return nil, nil, err
		}
		path = append(path, e)
	}
	return path, b, nil
}

func checkEmpty(b []byte) error {
	if len(b) != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformedEncoding, len(b))
	}
	return nil
}

// EncodeAuditProof returns the binary encoding of p.
func EncodeAuditProof(p *AuditProof) []byte {
	b := make([]byte, 0, 24+len(p.Path)*40)
	b = marshal.WriteInt(b, p.LeafIndex)
	b = marshal.WriteInt(b, p.TreeSize)
	return writePath(b, p.Path)
}

// DecodeAuditProof parses the output of EncodeAuditProof.
func DecodeAuditProof(b []byte) (*AuditProof, error) {
	var (
		p   AuditProof
		err error
	)
	if p.LeafIndex, b, err = readInt(b); err != nil {
		return nil, err
	}
	if p.TreeSize, b, err = readInt(b); err != nil {
		return nil, err
	}
	if p.Path, b, err = readPath(b); err != nil {
		return nil, err
	}
	if err := checkEmpty(b); err != nil {
		return nil, err
	}
	return &p, nil
}

// EncodeConsistencyProof returns the binary encoding of p.
func EncodeConsistencyProof(p *ConsistencyProof) []byte {
	b := make([]byte, 0, 24+len(p.Path)*40)
	b = marshal.WriteInt(b, p.OldSize)
	b = marshal.WriteInt(b, p.NewSize)
	return writePath(b, p.Path)
}

// DecodeConsistencyProof parses the output of EncodeConsistencyProof.
func DecodeConsistencyProof(b []byte) (*ConsistencyProof, error) {
	var (
		p   ConsistencyProof
		err error
	)
	if p.OldSize, b, err = readInt(b); err != nil {
		return nil, err
	}
	if p.NewSize, b, err = readInt(b); err != nil {
		return nil, err
	}
	if p.Path, b, err = readPath(b); err != nil {
		return nil, err
	}
	if err := checkEmpty(b); err != nil {
		return nil, err
	}
	return &p, nil
}

// EncodeFrontier returns the binary encoding of a tree size and its
// frontier, as returned by CompactTree.Frontier.
func EncodeFrontier(size uint64, frontier []Node) []byte {
	b := make([]byte, 0, 16+len(frontier)*48)
	b = marshal.WriteInt(b, size)
	b = marshal.WriteInt(b, uint64(len(frontier)))
	for _, n := range frontier {
		b = marshal.WriteInt(b, uint64(n.Level))
		b = writeBytes(b, n.Hash)
	}
	return b
}

// DecodeFrontier parses the output of EncodeFrontier. It checks the
// encoding only; RestoreCompactTree checks the frontier itself.
func DecodeFrontier(b []byte) (uint64, []Node, error) {
	size, b, err := readInt(b)
	if err != nil {
		return 0, nil, err
	}
	count, b, err := readInt(b)
	if err != nil {
		return 0, nil, err
	}
	if count > 64 {
		return 0, nil, fmt.Errorf("%w: frontier of %d nodes", ErrMalformedEncoding, count)
	}
	frontier := make([]Node, 0, count)
	for i := uint64(0); i < count; i++ {
		var level uint64
		if level, b, err = readInt(b); err != nil {
			return 0, nil, err
		}
		if level > 63 {
			return 0, nil, fmt.Errorf("%w: frontier level %d", ErrMalformedEncoding, level)
		}
		var hash []byte
		if hash, b, err = readBytes(b); err != nil {
			return 0, nil, err
		}
		frontier = append(frontier, Node{Level: uint8(level), Hash: hash})
	}
	if err := checkEmpty(b); err != nil {
		return 0, nil, err
	}
	return size, frontier, nil
}
