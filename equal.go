package jsontree

// Equal compares two trees structurally. Offsets and key order are
// ignored, leaves are compared by their raw text, so 1.0 and 1 differ.
func Equal(a, b *Tree) bool {
	return EqualNodes(a, a.Root(), b, b.Root())
}

// EqualNodes compares the subtree at na in ta with the subtree at nb in tb.
func EqualNodes(ta *Tree, na *Node, tb *Tree, nb *Node) bool {
	if na == nil || nb == nil {
		return na == nb
	}
	if na.Type != nb.Type {
		return false
	}
	if !na.IsIterable() {
		return na.Raw == nb.Raw
	}
	for _, k := range keyUnion(na.Keys, nb.Keys) {
		ca, cb := ta.Child(na, k), tb.Child(nb, k)
		if ca == nil || cb == nil {
			return false
		}
		if !EqualNodes(ta, ca, tb, cb) {
			return false
		}
	}
	return true
}

func keyUnion(a, b []Key) []Key {
	seen := make(map[Key]struct{}, len(a)+len(b))
	res := make([]Key, 0, len(a)+len(b))
	for _, kk := range [2][]Key{a, b} {
		for _, k := range kk {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			res = append(res, k)
		}
	}
	return res
}
