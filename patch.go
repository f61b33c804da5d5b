package jsontree

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/d1ced/jsontree/internal/debug"
)

// SetNest registers nodes as the pending replacement of the subtree at id.
// nodes must hold the new node for id and all of its descendants, and
// nothing outside of it. id must name a node of the tree or a pending one. The replacement is merged by StringifyNestNodes.
func (t *Tree) SetNest(id string, nodes map[string]*Node) error {
	if nodes[id] == nil {
		return errors.Wrapf(ErrMissingNode, "nest root %s", id)
	}
	if t.nodes[id] == nil && t.nest[id] == nil {
		return errors.Wrapf(ErrMissingNode, "nest target %s", id)
	}
	for nid, n := range nodes {
		if nid != id && !isDescendantID(nid, id) {
			return errors.Errorf("nest node %s is outside of %s", nid, id)
		}
		if n.ID != nid {
			return errors.Errorf("nest node %s is stored as %s", n.ID, nid)
		}
	}
	if t.nest == nil {
		t.nest = make(map[string]*Node, len(nodes))
	}
	for nid, n := range nodes {
		t.nest[nid] = n
	}
	return nil
}

// NestValue registers the Go value v as the pending replacement of the
// subtree at id.
func (t *Tree) NestValue(id string, v interface{}) error {
	nodes, err := buildGo(id, v)
	if err != nil {
		return err
	}
	return t.SetNest(id, nodes)
}

// Nested returns the identifiers of the pending subtree roots.
func (t *Tree) Nested() []string {
	var ids []string
	for id := range t.nest {
		if p, ok := ParentID(id); ok && t.nest[p] != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// nestOrNode resolves id preferring pending nodes.
func (t *Tree) nestOrNode(id string) *Node {
	if n := t.nest[id]; n != nil {
		return n
	}
	return t.nodes[id]
}

// collectSpans records spans like recordSpans and remembers every node it
// saw, so a re-rendered subtree can be merged into the tree.
type collectSpans struct {
	recordSpans
	seen []*Node
}

func (c *collectSpans) span(n *Node, offset, length, boundOffset int) {
	c.recordSpans.span(n, offset, length, boundOffset)
	c.seen = append(c.seen, n)
}

type patcher struct {
	t     *Tree
	s     *stringifier
	spans *collectSpans
	acc   int
	edits []Edit
}

// walk visits n in source order. acc is the size change of all edits left
// of the current position.
func (p *patcher) walk(n *Node, level int) {
	if nn := p.t.nest[n.ID]; nn != nil {
		p.spans.seen = p.spans.seen[:0]
		content := p.s.render(nn, n.Offset+p.acc, n.BoundOffset+p.acc, level)
		e := Edit{Offset: n.Offset, Length: n.Length, Content: content}
		if debug.Patch() {
			debug.Logf("patch %s: %d+%d -> %d bytes\n", n.ID, e.Offset, e.Length, len(content))
		}
		p.edits = append(p.edits, e)
		p.acc += len(content) - n.Length
		p.t.merge(n, p.spans.seen)
		return
	}
	before := p.acc
	n.shift(before)
	for _, k := range n.Keys {
		if c := p.t.Child(n, k); c != nil {
			p.walk(c, level+1)
		}
	}
	n.grow(p.acc - before)
}

// merge replaces the subtree of old with the rendered nodes.
func (t *Tree) merge(old *Node, rendered []*Node) {
	for id := range t.nodes {
		if id == old.ID || isDescendantID(id, old.ID) {
			delete(t.nodes, id)
		}
	}
	for _, n := range rendered {
		t.nodes[n.ID] = n
	}
	if n := t.nodes[old.ID]; n.RawKey == "" {
		n.RawKey = old.RawKey
	}
}

// StringifyNestNodes merges the pending subtrees into the tree. Only the
// text of the pending subtrees is regenerated; every other node keeps its
// text and has its spans moved by the size change left of it. The edits
// against the previous text are returned, the resulting text is trimmed of
// surrounding whitespace.
func (t *Tree) StringifyNestNodes(opts ...Option) []Edit {
	root := t.Root()
	if root == nil {
		return nil
	}
	o := newOptions(opts...)
	o.pure = false
	spans := &collectSpans{}
	s := newStringifier(t.nestOrNode, o)
	s.spans = spans
	p := &patcher{t: t, s: s, spans: spans}
	p.walk(root, 0)

	text, err := ApplyEdits(t.text, p.edits)
	if err != nil {
		panic(errors.Wrap(err, "invariant violation: nest edits"))
	}
	const ws = " \t\r\n"
	if lead := len(text) - len(strings.TrimLeft(text, ws)); lead > 0 {
		t.shiftAll(-lead)
	}
	t.text = strings.Trim(text, ws)
	t.nest = nil
	t.version++
	return p.edits
}
