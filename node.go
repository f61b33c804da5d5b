package jsontree

// JSONType is an enum for any JSON-types
type JSONType uint8

//go:generate stringer -type JSONType

// JSONTypes to compare nodes of a tree with. The zero value signals invalid.
const (
	Error JSONType = iota
	Null
	Bool
	Number
	String
	Array
	Object
)

// Node is the record of one JSON value inside a Tree.
//
// Nodes never point to each other. The parent and the children of a node
// are derived from its ID and Keys through the owning Tree. Depending on
// Type, Value holds:
//
//	JSONType	Value
//	Null		nil
//	Bool		bool
//	Number		float64
//	String		string
//	Array		nil
//	Object		nil
//
// Offset and Length span the node's own tokens in the tree text, brackets
// included for containers. The bound span starts earlier for object
// members, at the member's key, and ends where the node ends.
type Node struct {
	ID     string
	Type   JSONType
	Value  interface{}
	Raw    string
	RawKey string
	Keys   []Key

	Offset      int
	Length      int
	BoundOffset int
	BoundLength int
}

// IsIterable reports whether n is an object or an array.
func (n *Node) IsIterable() bool {
	return n.Type == Object || n.Type == Array
}

// HasChildren reports whether n has at least one child key.
func (n *Node) HasChildren() bool {
	return len(n.Keys) > 0
}

// IsRoot reports whether n is the root of its tree.
func (n *Node) IsRoot() bool {
	return n.ID == RootID
}

// IsGraphNode reports whether n is addressed as a container by point
// queries: the root or any node with children.
func (n *Node) IsGraphNode() bool {
	return n.IsRoot() || n.HasChildren()
}

// Key returns the last segment of the node's path.
// It reports false for the root.
func (n *Node) Key() (Key, bool) {
	p, err := ParseID(n.ID)
	if err != nil || len(p) == 0 {
		return Key{}, false
	}
	return p[len(p)-1], true
}

// Path returns the logical path of n.
func (n *Node) Path() Path {
	p, _ := ParseID(n.ID)
	return p
}

// End is the offset just past the node's text.
func (n *Node) End() int {
	return n.Offset + n.Length
}

func (n *Node) setSpan(offset, length, boundOffset int) {
	n.Offset = offset
	n.Length = length
	n.BoundOffset = boundOffset
	n.BoundLength = offset + length - boundOffset
}

// shift moves both spans of n by delta.
func (n *Node) shift(delta int) {
	n.Offset += delta
	n.BoundOffset += delta
}

// grow extends both spans of n by delta at their end.
func (n *Node) grow(delta int) {
	n.Length += delta
	n.BoundLength += delta
}
