package jsontree

import (
	"sort"
	"strings"
)

// spanWriter receives the span of every node a stringifier emits, and the
// key order of every container whose keys were sorted on output.
type spanWriter interface {
	span(n *Node, offset, length, boundOffset int)
	order(n *Node, keys []Key)
}

// recordSpans re-indexes the emitted nodes. Keys must follow the text, so
// sorted output also becomes the stored order.
type recordSpans struct{}

func (recordSpans) span(n *Node, offset, length, boundOffset int) {
	n.setSpan(offset, length, boundOffset)
}

func (recordSpans) order(n *Node, keys []Key) {
	n.Keys = keys
}

// discardSpans leaves the nodes untouched, for pure serialization.
type discardSpans struct{}

func (discardSpans) span(*Node, int, int, int) {}

func (discardSpans) order(*Node, []Key) {}

// stringifier writes JSON text for a subtree and hands the position of
// each node to spans while doing so.
type stringifier struct {
	lookup func(id string) *Node
	spans  spanWriter
	opts   *options
	base   int
	buf    []byte
}

func newStringifier(lookup func(string) *Node, o *options) *stringifier {
	s := &stringifier{
		lookup: lookup,
		spans:  recordSpans{},
		opts:   o,
		buf:    make([]byte, 0, 64),
	}
	if o.pure {
		s.spans = discardSpans{}
	}
	return s
}

// render serializes n as if it started at offset in the final text. level
// is the indentation depth of n.
func (s *stringifier) render(n *Node, offset, boundOffset, level int) string {
	s.base = offset
	s.buf = s.buf[:0]
	s.write(n, boundOffset, level)
	return string(s.buf)
}

func (s *stringifier) pos() int {
	return s.base + len(s.buf)
}

func (s *stringifier) write(n *Node, boundOffset, level int) {
	off := s.pos()
	switch n.Type {
	case Object, Array:
		lb, rb := byte('['), byte(']')
		if n.Type == Object {
			lb, rb = '{', '}'
		}
		s.buf = append(s.buf, lb)
		keys := s.order(n)
		written := 0
		for _, k := range keys {
			c := s.lookup(ChildID(n.ID, k))
			if c == nil {
				continue
			}
			if written > 0 {
				s.buf = append(s.buf, ',')
			}
			s.newline(level + 1)
			bound := s.pos()
			if n.Type == Object {
				s.writeKey(c, k)
			}
			s.write(c, bound, level+1)
			written++
		}
		if written > 0 {
			s.newline(level)
		}
		s.buf = append(s.buf, rb)
		if s.opts.sort != SortNone && n.Type == Object {
			s.spans.order(n, keys)
		}
	default:
		s.buf = append(s.buf, n.Raw...)
	}
	s.spans.span(n, off, s.pos()-off, boundOffset)
}

func (s *stringifier) writeKey(c *Node, k Key) {
	if c.RawKey != "" {
		s.buf = append(s.buf, c.RawKey...)
	} else {
		s.buf = append(s.buf, quote(k.Name)...)
	}
	s.buf = append(s.buf, ':')
	if s.opts.format {
		s.buf = append(s.buf, ' ')
	}
}

func (s *stringifier) newline(level int) {
	if !s.opts.format {
		return
	}
	s.buf = append(s.buf, '\n')
	s.buf = append(s.buf, strings.Repeat(" ", level*s.opts.tabWidth)...)
}

// order returns the keys of n in emission order.
func (s *stringifier) order(n *Node) []Key {
	if n.Type != Object || s.opts.sort == SortNone || len(n.Keys) < 2 {
		return n.Keys
	}
	kk := make([]Key, len(n.Keys))
	copy(kk, n.Keys)
	desc := s.opts.sort == SortDesc
	sort.SliceStable(kk, func(i, j int) bool {
		if desc {
			return kk[i].Name > kk[j].Name
		}
		return kk[i].Name < kk[j].Name
	})
	return kk
}

// StringifyNode serializes the subtree at n as if it started at offset,
// with its bound span starting at boundOffset. Unless Pure is given every
// node of the subtree gets its spans rewritten.
func (t *Tree) StringifyNode(n *Node, offset, boundOffset int, opts ...Option) string {
	if n == nil {
		return ""
	}
	return newStringifier(t.Node, newOptions(opts...)).render(n, offset, boundOffset, 0)
}

// Stringify regenerates the text of the whole tree. Unless Pure is given
// the tree text is replaced, spans are rewritten and the version is
// incremented.
func (t *Tree) Stringify(opts ...Option) string {
	root := t.Root()
	if root == nil {
		return ""
	}
	o := newOptions(opts...)
	text := newStringifier(t.Node, o).render(root, 0, 0, 0)
	if !o.pure {
		t.text = text
		t.version++
	}
	return text
}
