package jsontree

import (
	"encoding/json"
	"regexp"
	"strconv"

	"github.com/d1ced/jsontree/internal/debug"
)

var numberRegex = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// frame is a container that is still open while parsing.
type frame struct {
	node  *Node
	key   token // key token of the member being read, objects only
	name  string
	count int
}

// parser is a state machine creating a flat node map from lex tokens.
// The parser stops at the first error and keeps what it built so far.
type parser struct {
	in    <-chan token
	nodes map[string]*Node
	stack []*frame
	prev  token
	end   int // offset past the last consumed token
}

type parseFunc func(p *parser) (parseFunc, error)

// parse reads tokens from a channel and fills a node map with spans.
func parse(ch <-chan token, quit func()) (map[string]*Node, error) {
	defer quit()
	p := &parser{
		in:    ch,
		nodes: make(map[string]*Node),
	}
	var err error
	for f := parseFunc(expectValue); f != nil && err == nil; f, err = f(p) {
	}
	if err != nil {
		p.closeOpen()
		if debug.Parse() {
			debug.Logf("parse: %v (%d nodes recovered)\n", err, len(p.nodes))
		}
	}
	return p.nodes, err
}

func (p *parser) next() (token, bool) {
	t, ok := <-p.in
	if ok {
		p.end = t.end()
	}
	return t, ok
}

func (p *parser) top() *frame {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

// attach names n after its position in the enclosing container and adds
// it to the node map.
func (p *parser) attach(n *Node) {
	f := p.top()
	switch {
	case f == nil:
		n.ID = RootID
	case f.node.Type == Array:
		k := Index(f.count)
		n.ID = ChildID(f.node.ID, k)
		f.node.Keys = append(f.node.Keys, k)
	default:
		k := Field(f.name)
		n.ID = ChildID(f.node.ID, k)
		n.RawKey = f.key.Value
		n.BoundOffset = f.key.Offset
		f.node.Keys = append(f.node.Keys, k)
	}
	if f != nil {
		f.count++
	}
	n.BoundLength = n.End() - n.BoundOffset
	p.nodes[n.ID] = n
}

// closeTop finishes the innermost container at its closing bracket t.
func (p *parser) closeTop(t token) {
	n := p.stack[len(p.stack)-1].node
	p.stack = p.stack[:len(p.stack)-1]
	n.Length = t.end() - n.Offset
	n.BoundLength = n.End() - n.BoundOffset
}

// closeOpen ends all open containers at the last consumed token.
func (p *parser) closeOpen() {
	for len(p.stack) > 0 {
		n := p.stack[len(p.stack)-1].node
		p.stack = p.stack[:len(p.stack)-1]
		n.Length = p.end - n.Offset
		n.BoundLength = n.End() - n.BoundOffset
	}
}

// parseFunc's

func expectKey(p *parser) (parseFunc, error) {
	t, ok := p.next()
	defer func() { p.prev = t }()
	f := p.top()
	if f == nil || f.node.Type != Object {
		panic("invariant violation: expect key while not in object")
	}
	if ok && t.Type == objectCToken && f.count == 0 {
		p.closeTop(t)
		return expectDelim, nil
	}
	if t.Type != stringToken {
		return nil, newParseError("key", p.prev, t, p)
	}
	name, err := unquote(t.Value)
	if err != nil {
		return nil, newParseError("valid key", p.prev, t, p)
	}
	if _, dup := p.nodes[ChildID(f.node.ID, Field(name))]; dup {
		return nil, newParseError("unique key", p.prev, t, p)
	}
	f.key, f.name = t, name
	p.prev = t
	t, ok = p.next()
	if !ok || t.Type != colonToken {
		return nil, newParseError("colon", p.prev, t, p)
	}
	return expectValue, nil
}

func expectValue(p *parser) (parseFunc, error) {
	t, ok := p.next()
	defer func() { p.prev = t }()
	if !ok {
		return nil, newParseError("value", p.prev, t, p)
	}
	if f := p.top(); f != nil && f.node.Type == Array && t.Type == arrayCToken && f.count == 0 {
		p.closeTop(t)
		return expectDelim, nil
	}
	n := &Node{
		Offset:      t.Offset,
		BoundOffset: t.Offset,
		Raw:         t.Value,
		Length:      len(t.Value),
	}
	switch t.Type {
	case numberToken:
		if !numberRegex.MatchString(t.Value) {
			return nil, newParseError("number", p.prev, t, p)
		}
		// out of range numbers are valid json and decode to ±Inf
		num, _ := strconv.ParseFloat(t.Value, 64)
		n.Type, n.Value = Number, num
	case stringToken:
		s, err := unquote(t.Value)
		if err != nil {
			return nil, newParseError("valid string", p.prev, t, p)
		}
		n.Type, n.Value = String, s
	case nullToken:
		n.Type = Null
	case trueToken:
		n.Type, n.Value = Bool, true
	case falseToken:
		n.Type, n.Value = Bool, false
	case arrayOToken:
		n.Type, n.Raw, n.Length = Array, "", 0
	case objectOToken:
		n.Type, n.Raw, n.Length = Object, "", 0
	default:
		return nil, newParseError("value", p.prev, t, p)
	}
	p.attach(n)
	switch n.Type {
	case Array:
		p.stack = append(p.stack, &frame{node: n})
		return expectValue, nil
	case Object:
		p.stack = append(p.stack, &frame{node: n})
		return expectKey, nil
	}
	return expectDelim, nil
}

func expectDelim(p *parser) (parseFunc, error) {
	t, ok := p.next()
	defer func() { p.prev = t }()
	f := p.top()
	if !ok {
		if f == nil {
			return nil, nil // all OK!
		}
		return nil, newParseError("delimiter", p.prev, t, p)
	}
	if f == nil {
		return nil, newParseError("end of input", p.prev, t, p)
	}
	switch t.Type {
	case commaToken:
		if f.node.Type == Array {
			return expectValue, nil
		}
		return expectKey, nil
	case arrayCToken:
		if f.node.Type != Array {
			return nil, newParseError("object closing", p.prev, t, p)
		}
		p.closeTop(t)
		return expectDelim, nil
	case objectCToken:
		if f.node.Type != Object {
			return nil, newParseError("array closing", p.prev, t, p)
		}
		p.closeTop(t)
		return expectDelim, nil
	default:
		return nil, newParseError("delimiter", p.prev, t, p)
	}
}

// unquote decodes the raw string token lit.
func unquote(lit string) (string, error) {
	var s string
	if err := json.Unmarshal([]byte(lit), &s); err != nil {
		return "", err
	}
	return s, nil
}
