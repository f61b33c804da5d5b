package jsontree

import "fmt"

type tokenType uint8

const (
	errToken tokenType = iota
	nullToken
	trueToken
	falseToken
	numberToken
	stringToken
	commaToken
	colonToken
	arrayOToken
	arrayCToken
	objectOToken
	objectCToken
)

// token is one lexeme of the source text. Value holds the raw text of the
// token, quotes included for strings. Offset is the byte offset into the
// source and Position the zero based row and column.
type token struct {
	Type     tokenType
	Value    string
	Offset   int
	Position [2]int
}

func newToken(b byte, offset, row, col int) token {
	t := token{Value: string(b), Offset: offset, Position: [2]int{row, col}}
	switch b {
	case '{':
		t.Type = objectOToken
	case '}':
		t.Type = objectCToken
	case '[':
		t.Type = arrayOToken
	case ']':
		t.Type = arrayCToken
	case ':':
		t.Type = colonToken
	case ',':
		t.Type = commaToken
	}
	return t
}

// end is the offset just past the token.
func (t token) end() int {
	return t.Offset + len(t.Value)
}

// String generates a readable form of a token meant for debuging.
func (t token) String() string {
	switch t.Type {
	case errToken:
		return "lex-err_" + t.Value
	case nullToken:
		return "'null'"
	case trueToken:
		return "'true'"
	case falseToken:
		return "'false'"
	case numberToken:
		return "lex-num_" + t.Value
	case stringToken:
		return "lex-str_" + t.Value
	case commaToken:
		return "','"
	case colonToken:
		return "':'"
	case arrayOToken:
		return "'['"
	case arrayCToken:
		return "']'"
	case objectOToken:
		return "'{'"
	case objectCToken:
		return "'}'"
	default:
		return "lex-unkown"
	}
}

// Error describes the token as the culprit of a syntax error.
func (t token) Error() string {
	if t == (token{}) {
		return "unexpected end of input"
	}
	return fmt.Sprintf("%d:%d: unexpected %s", t.Position[0]+1, t.Position[1]+1, t.String())
}
