package jsontree

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// RootID identifies the root node of every tree.
const RootID = "$"

var plainKey = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_\-]*$`)

// Key is a single step from a container to one of its children: either an
// object field or an array index.
type Key struct {
	Name  string
	Index int
	Array bool
}

// Field creates the key of an object member.
func Field(name string) Key {
	return Key{Name: name}
}

// Index creates the key of an array element.
func Index(i int) Key {
	return Key{Index: i, Array: true}
}

// String renders k as an identifier segment: `.name`, `["quoted name"]` or
// `[i]`. Invalid UTF-8 in a name is written as U+FFFD, parsed JSON keys
// never contain it.
func (k Key) String() string {
	if k.Array {
		return "[" + strconv.Itoa(k.Index) + "]"
	}
	if plainKey.MatchString(k.Name) {
		return "." + k.Name
	}
	return "[" + quote(k.Name) + "]"
}

// Path is the logical location of a node, from the root downwards.
type Path []Key

// ID serializes p into the identifier of the node it leads to.
func (p Path) ID() string {
	b := strings.Builder{}
	b.WriteString(RootID)
	for _, k := range p {
		b.WriteString(k.String())
	}
	return b.String()
}

func (p Path) String() string {
	return p.ID()
}

// ChildID derives the identifier of the child k of the node parentID.
func ChildID(parentID string, k Key) string {
	return parentID + k.String()
}

// ParseID turns an identifier back into the path it was built from.
func ParseID(id string) (Path, error) {
	return ParsePath(id)
}

// ParentID strips the last segment of id. It reports false for the root and
// for malformed identifiers.
func ParentID(id string) (string, bool) {
	p, err := ParseID(id)
	if err != nil || len(p) == 0 {
		return "", false
	}
	return p[:len(p)-1].ID(), true
}

// isDescendantID reports whether id lies strictly below ancestor.
// Canonical identifiers quote every field containing '.' or '[', so a
// prefix followed by a segment start is always a real descendant.
func isDescendantID(id, ancestor string) bool {
	if len(id) <= len(ancestor) || !strings.HasPrefix(id, ancestor) {
		return false
	}
	c := id[len(ancestor)]
	return c == '.' || c == '['
}

const hex = "0123456789abcdef"

// quote renders s as a JSON string.
func quote(s string) string {
	b := make([]byte, 0, len(s)+2)
	b = append(b, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' && c < utf8.RuneSelf {
			b = append(b, c)
			i++
			continue
		}
		if c < utf8.RuneSelf {
			switch c {
			case '"', '\\':
				b = append(b, '\\', c)
			case '\n':
				b = append(b, '\\', 'n')
			case '\r':
				b = append(b, '\\', 'r')
			case '\t':
				b = append(b, '\\', 't')
			default:
				b = append(b, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xF])
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b = append(b, `�`...)
		} else {
			b = append(b, s[i:i+size]...)
		}
		i += size
	}
	return string(append(b, '"'))
}
