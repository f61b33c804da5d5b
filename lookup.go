package jsontree

import (
	"sort"

	"github.com/d1ced/jsontree/internal/debug"
)

// LocationKind tells which part of a node an offset points at.
type LocationKind string

const (
	NodeLocation  LocationKind = "node"
	KeyLocation   LocationKind = "key"
	ValueLocation LocationKind = "value"
)

// Location is the result of an offset lookup.
type Location struct {
	Node *Node
	Kind LocationKind
}

// inBound reports whether offset falls into the bound span of n. Spans are
// open on the left: a caret right after the last character of a node still
// belongs to it, a caret before its first character does not.
func inBound(n *Node, offset int) bool {
	return n.BoundOffset < offset && offset <= n.BoundOffset+n.BoundLength
}

// FindNodeAtOffset returns the innermost node whose bound span contains
// offset. It returns nil for an invalid tree or an offset outside the root.
func (t *Tree) FindNodeAtOffset(offset int) *Location {
	if !t.Valid() {
		return nil
	}
	n := t.Root()
	if !inBound(n, offset) {
		return nil
	}
	for {
		c := t.childAtOffset(n, offset)
		if c == nil {
			break
		}
		n = c
	}
	loc := &Location{Node: n, Kind: KeyLocation}
	switch {
	case n.IsGraphNode():
		loc.Kind = NodeLocation
	case n.Offset < offset && offset <= n.End():
		loc.Kind = ValueLocation
	}
	if debug.Lookup() {
		debug.Logf("offset %d -> %s (%s)\n", offset, n.ID, loc.Kind)
	}
	return loc
}

// childAtOffset binary searches the children of n, whose bound spans are
// increasing in source order, for the one containing offset.
func (t *Tree) childAtOffset(n *Node, offset int) *Node {
	keys := n.Keys
	i := sort.Search(len(keys), func(i int) bool {
		c := t.Child(n, keys[i])
		return c == nil || c.BoundOffset+c.BoundLength >= offset
	})
	if i == len(keys) {
		return nil
	}
	c := t.Child(n, keys[i])
	if c == nil || !inBound(c, offset) {
		return nil
	}
	return c
}

// FindNodeByPath resolves a path expression (see ParsePath) to a node. It
// fails closed: a malformed expression, a missing key, an index applied to
// an object, a field applied to an array and a path running past a leaf
// all give nil.
func (t *Tree) FindNodeByPath(expr string) *Node {
	p, err := ParsePath(expr)
	if err != nil {
		if debug.Lookup() {
			debug.Logf("path: %v\n", err)
		}
		return nil
	}
	return t.nodeAtPath(p)
}

func (t *Tree) nodeAtPath(p Path) *Node {
	n := t.Root()
	for _, k := range p {
		if n == nil {
			return nil
		}
		switch {
		case n.Type == Array && !k.Array, n.Type == Object && k.Array, !n.IsIterable():
			return nil
		}
		n = t.Child(n, k)
	}
	return n
}
