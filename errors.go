package jsontree

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrMissingNode signals a child key without a node in the tree. A valid
// tree never has one.
var ErrMissingNode = errors.New("node missing from tree")

// ErrInvalidTree is returned by operations that need a root node.
var ErrInvalidTree = errors.New("tree has no root")

// ErrBadPath signals a path expression or identifier that does not parse.
var ErrBadPath = errors.New("malformed path")

// ParseError captures information on errors when parsing.
type ParseError struct {
	msg        string
	token      token
	before     token
	parentType JSONType
	key        string
}

func newParseError(msg string, before, after token, p *parser) *ParseError {
	e := &ParseError{
		msg:    msg,
		before: before,
		token:  after,
	}
	if f := p.top(); f != nil {
		e.parentType = f.node.Type
		e.key = f.node.ID
	}
	return e
}

func (e *ParseError) Error() string {
	if e.before == (token{}) {
		return fmt.Sprintf("%s; expected %s", e.token.Error(), e.msg)
	}
	if e.parentType == Error {
		return fmt.Sprintf("%s; expected %s token after %s",
			e.token.Error(), e.msg, e.before.String())
	}
	if e.key == RootID {
		return fmt.Sprintf("%s; expected %s token after %s (in top-level %s)",
			e.token.Error(), e.msg, e.before.String(), e.parentType.String())
	}
	return fmt.Sprintf("%s; expected %s token after %s (at %s in %s)",
		e.token.Error(), e.msg, e.before.String(), e.key, e.parentType)
}

// Where returns the row and column where the syntax error in json occured.
func (e *ParseError) Where() (row, col int) {
	return e.token.Position[0], e.token.Position[1]
}

// Offset returns the byte offset of the offending token, or -1 when the
// input ended early.
func (e *ParseError) Offset() int {
	if e.token == (token{}) {
		return -1
	}
	return e.token.Offset
}
