package kv

// Range is a key range [Start, Limit). A nil Limit means no upper bound.
type Range struct {
	Start []byte
	Limit []byte
}

// IncrementKey returns the first key greater than every key that has
// the given prefix, or nil if there is none.
func IncrementKey(prefix []byte) []byte {
	for i := len(prefix) - 1; i >= 0; i-- {
		if c := prefix[i]; c < 0xff {
			limit := make([]byte, i+1)
			copy(limit, prefix)
			limit[i] = c + 1
			return limit
		}
	}
	return nil
}

// BytesPrefix returns the range of keys having the given prefix.
func BytesPrefix(prefix []byte) *Range {
	return &Range{Start: prefix, Limit: IncrementKey(prefix)}
}
