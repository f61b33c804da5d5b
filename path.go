package jsontree

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParsePath parses a path expression into its segments.
//
// The grammar follows the usual JSON path conventions:
//
//	$             the root, as does the empty string
//	a.b.c         object fields
//	arr[0]        array elements
//	["a.b"]       fields that contain dots, brackets or quotes
//	['a.b']       the same with single quotes
//
// A leading `$` is optional. Identifiers produced by ChildID are valid
// paths.
func ParsePath(expr string) (Path, error) {
	s := expr
	if strings.HasPrefix(s, RootID) && (len(s) == 1 || s[1] == '.' || s[1] == '[') {
		s = s[1:]
	}
	p := Path{}
	first := true
	for len(s) > 0 {
		var (
			k   Key
			err error
		)
		switch s[0] {
		case '.':
			k, s, err = parseName(s[1:])
		case '[':
			k, s, err = parseBracket(s)
		default:
			if !first {
				return nil, errors.Wrapf(ErrBadPath, "%q: unexpected %q", expr, s[0])
			}
			k, s, err = parseName(s)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "%q", expr)
		}
		p = append(p, k)
		first = false
	}
	return p, nil
}

func parseName(s string) (Key, string, error) {
	i := strings.IndexAny(s, ".[]")
	if i < 0 {
		i = len(s)
	}
	if i == 0 {
		return Key{}, s, errors.Wrap(ErrBadPath, "empty field")
	}
	return Field(s[:i]), s[i:], nil
}

// parseBracket reads `[i]`, `["name"]` or `['name']` from the start of s.
func parseBracket(s string) (Key, string, error) {
	if len(s) < 3 {
		return Key{}, s, errors.Wrap(ErrBadPath, "unterminated bracket")
	}
	if q := s[1]; q == '"' || q == '\'' {
		end := closingQuote(s, 2, q)
		if end < 0 || end+1 >= len(s) || s[end+1] != ']' {
			return Key{}, s, errors.Wrap(ErrBadPath, "unterminated quoted field")
		}
		name, err := unquoteKey(s[1:end+1], q)
		if err != nil {
			return Key{}, s, err
		}
		return Field(name), s[end+2:], nil
	}
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return Key{}, s, errors.Wrap(ErrBadPath, "unterminated bracket")
	}
	digits := s[1:end]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Key{}, s, errors.Wrapf(ErrBadPath, "bad index %q", digits)
		}
	}
	i, err := strconv.Atoi(digits)
	if err != nil {
		return Key{}, s, errors.Wrapf(ErrBadPath, "bad index %q", digits)
	}
	return Index(i), s[end+1:], nil
}

// closingQuote returns the position of the quote q closing the string that
// starts before from, skipping escaped characters.
func closingQuote(s string, from int, q byte) int {
	for i := from; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case q:
			return i
		}
	}
	return -1
}

func unquoteKey(lit string, q byte) (string, error) {
	if q == '\'' {
		r := strings.NewReplacer(`\'`, `'`, `\\`, `\`)
		return r.Replace(lit[1 : len(lit)-1]), nil
	}
	var name string
	if err := json.Unmarshal([]byte(lit), &name); err != nil {
		return "", errors.Wrapf(ErrBadPath, "bad quoted field %s", lit)
	}
	return name, nil
}
