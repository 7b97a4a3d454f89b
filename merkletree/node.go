package merkletree

// Node is a frontier entry: the root hash of a perfect subtree
// covering exactly 2^Level consecutive leaves.
type Node struct {
	Level uint8
	Hash  []byte
}

func copyFrontier(frontier []Node) []Node {
	if frontier == nil {
		return nil
	}
	f := make([]Node, len(frontier))
	for i, n := range frontier {
		f[i] = Node{Level: n.Level, Hash: append([]byte(nil), n.Hash...)}
	}
	return f
}
