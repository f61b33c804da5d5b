package jsontree

import (
	"github.com/pkg/errors"
)

// Tree is a flat index over one JSON text. It owns the map from identifier
// to node and the text the nodes' spans refer to.
//
// A Tree is not safe for concurrent use. Only the tree's own algorithms
// (Stringify, StringifyNestNodes, Format) rewrite spans and text.
type Tree struct {
	nodes   map[string]*Node
	text    string
	errs    []error
	version int
	nest    map[string]*Node
}

// Parse builds a tree from text. Malformed input does not fail: the tree
// keeps the nodes recovered before the error and reports it via Errors.
func Parse(text string) *Tree {
	nodes, err := parse(lex(text))
	t := &Tree{nodes: nodes, text: text}
	if err != nil {
		t.errs = []error{err}
	}
	return t
}

// NewTree adopts a snapshot produced by another front end. The tree takes
// ownership of nodes.
func NewTree(nodes map[string]*Node, text string, errs []error, version int) *Tree {
	if nodes == nil {
		nodes = make(map[string]*Node)
	}
	return &Tree{nodes: nodes, text: text, errs: errs, version: version}
}

// Reparse returns the tree for text that replaces t, one version later.
func (t *Tree) Reparse(text string) *Tree {
	n := Parse(text)
	n.version = t.version + 1
	return n
}

// Valid reports whether t has a root and no errors.
func (t *Tree) Valid() bool {
	return t.Root() != nil && !t.HasError()
}

// HasError reports whether parsing left diagnostics.
func (t *Tree) HasError() bool {
	return len(t.errs) > 0
}

// Errors returns the parse diagnostics.
func (t *Tree) Errors() []error {
	return t.errs
}

// Text returns the source text the spans refer to.
func (t *Tree) Text() string {
	return t.text
}

// Version counts the text regenerations of the tree.
func (t *Tree) Version() int {
	return t.version
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Root returns the root node or nil for an empty tree.
func (t *Tree) Root() *Node {
	return t.nodes[RootID]
}

// Node returns the node identified by id or nil.
func (t *Tree) Node(id string) *Node {
	return t.nodes[id]
}

// Child returns the child k of n. A nil result is a normal miss, e.g. an
// element of a heterogeneous array that lacks the key.
func (t *Tree) Child(n *Node, k Key) *Node {
	if n == nil {
		return nil
	}
	return t.nodes[ChildID(n.ID, k)]
}

// Children returns the children of n in source order.
func (t *Tree) Children(n *Node) []*Node {
	cc := make([]*Node, 0, len(n.Keys))
	for _, k := range n.Keys {
		if c := t.Child(n, k); c != nil {
			cc = append(cc, c)
		}
	}
	return cc
}

// MapChildren applies fn to every child key of n in source order. The node
// passed to fn is nil when the key has no node.
func MapChildren[T any](t *Tree, n *Node, fn func(k Key, c *Node) T) []T {
	res := make([]T, 0, len(n.Keys))
	for _, k := range n.Keys {
		res = append(res, fn(k, t.Child(n, k)))
	}
	return res
}

// GraphNodeID normalizes id to the nearest renderable container: id itself
// when it names a graph node, its parent otherwise.
func (t *Tree) GraphNodeID(id string) string {
	if n := t.nodes[id]; n != nil && n.IsGraphNode() {
		return id
	}
	if p, ok := ParentID(id); ok {
		return p
	}
	return id
}

// ToJSON creates the Go representation of the subtree at n, or of the
// whole tree when n is nil. Like encoding/json the possible types are:
//
//	Object    map[string]interface{}
//	Array     []interface{}
//	String    string
//	Number    float64
//	Bool      bool
//	Null      nil (with the error being nil too)
func (t *Tree) ToJSON(n *Node) (interface{}, error) {
	if n == nil {
		if n = t.Root(); n == nil {
			return nil, ErrInvalidTree
		}
	}
	switch n.Type {
	case Object:
		m := make(map[string]interface{}, len(n.Keys))
		for _, k := range n.Keys {
			c := t.Child(n, k)
			if c == nil {
				return nil, errors.Wrapf(ErrMissingNode, "%s", ChildID(n.ID, k))
			}
			itf, err := t.ToJSON(c)
			if err != nil {
				return nil, err
			}
			m[k.Name] = itf
		}
		return m, nil
	case Array:
		s := make([]interface{}, 0, len(n.Keys))
		for _, k := range n.Keys {
			c := t.Child(n, k)
			if c == nil {
				return nil, errors.Wrapf(ErrMissingNode, "%s", ChildID(n.ID, k))
			}
			itf, err := t.ToJSON(c)
			if err != nil {
				return nil, err
			}
			s = append(s, itf)
		}
		return s, nil
	case Error:
		return nil, errors.Errorf("node %s has no type", n.ID)
	default:
		return n.Value, nil
	}
}

// shiftAll moves every span in the tree by delta.
func (t *Tree) shiftAll(delta int) {
	for _, n := range t.nodes {
		n.shift(delta)
	}
}
