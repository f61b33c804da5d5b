package jsontree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLexer(t *testing.T) {
	tests := []struct {
		have string
		want []token
	}{
		{`{"a": null}`, []token{
			{Type: objectOToken, Value: "{", Offset: 0, Position: [2]int{0, 0}},
			{Type: stringToken, Value: `"a"`, Offset: 1, Position: [2]int{0, 1}},
			{Type: colonToken, Value: ":", Offset: 4, Position: [2]int{0, 4}},
			{Type: nullToken, Value: "null", Offset: 6, Position: [2]int{0, 6}},
			{Type: objectCToken, Value: "}", Offset: 10, Position: [2]int{0, 10}},
		}},
		{`[false, -31.2, 5, "ab\"cd"]`, []token{
			{Type: arrayOToken, Value: "[", Offset: 0, Position: [2]int{0, 0}},
			{Type: falseToken, Value: "false", Offset: 1, Position: [2]int{0, 1}},
			{Type: commaToken, Value: ",", Offset: 6, Position: [2]int{0, 6}},
			{Type: numberToken, Value: "-31.2", Offset: 8, Position: [2]int{0, 8}},
			{Type: commaToken, Value: ",", Offset: 13, Position: [2]int{0, 13}},
			{Type: numberToken, Value: "5", Offset: 15, Position: [2]int{0, 15}},
			{Type: commaToken, Value: ",", Offset: 16, Position: [2]int{0, 16}},
			{Type: stringToken, Value: `"ab\"cd"`, Offset: 18, Position: [2]int{0, 18}},
			{Type: arrayCToken, Value: "]", Offset: 26, Position: [2]int{0, 26}},
		}},
		{"{\n  \"k\": true\n}", []token{
			{Type: objectOToken, Value: "{", Offset: 0, Position: [2]int{0, 0}},
			{Type: stringToken, Value: `"k"`, Offset: 4, Position: [2]int{1, 2}},
			{Type: colonToken, Value: ":", Offset: 7, Position: [2]int{1, 5}},
			{Type: trueToken, Value: "true", Offset: 9, Position: [2]int{1, 7}},
			{Type: objectCToken, Value: "}", Offset: 14, Position: [2]int{2, 0}},
		}},
		{`[0]`, []token{
			{Type: arrayOToken, Value: "[", Offset: 0, Position: [2]int{0, 0}},
			{Type: numberToken, Value: "0", Offset: 1, Position: [2]int{0, 1}},
			{Type: arrayCToken, Value: "]", Offset: 2, Position: [2]int{0, 2}},
		}},
	}
outer:
	for _, test := range tests {
		lexc, q := lex(test.have)
		for _, w := range test.want {
			tk := <-lexc
			if tk != w {
				t.Errorf("have %v, got %s at %d, want %s at %d", test.have, tk, tk.Offset, w, w.Offset)
				q()
				continue outer
			}
		}
		if tk, ok := <-lexc; ok {
			t.Errorf("expected nothing, got %s", tk.String())
		}
		q()
	}
}

func TestLexErr(t *testing.T) {
	tests := []struct {
		have string
		want token
	}{
		{`{"a": nul}`, token{
			Value:    "nul",
			Offset:   6,
			Position: [2]int{0, 6},
		}},
		{`{"a": "\"}`, token{
			Value:    `"\"}`,
			Offset:   6,
			Position: [2]int{0, 6},
		}},
		{`{"a". false}`, token{
			Value:    ".",
			Offset:   4,
			Position: [2]int{0, 4},
		}},
		{"{\"a\"\n <garbage>}", token{
			Value:    "<garbage>",
			Offset:   6,
			Position: [2]int{1, 1},
		}},
		{`[nullx]`, token{
			Value:    "nullx",
			Offset:   1,
			Position: [2]int{0, 1},
		}},
	}
	for _, test := range tests {
		var have token
		lexc, q := lex(test.have)
		for tk := range lexc {
			have = tk
		}
		q()
		if have != test.want {
			t.Errorf("got %v, want %v, for %v", have.Error(), test.want, test.have)
		}
	}
}

func TestParseSpans(t *testing.T) {
	tests := []struct {
		have string
		want map[string]*Node
	}{
		{`{"a":1}`, map[string]*Node{
			"$": {ID: "$", Type: Object, Keys: []Key{Field("a")},
				Offset: 0, Length: 7, BoundOffset: 0, BoundLength: 7},
			"$.a": {ID: "$.a", Type: Number, Value: 1., Raw: "1", RawKey: `"a"`,
				Offset: 5, Length: 1, BoundOffset: 1, BoundLength: 5},
		}},
		{`{"a": [true, null], "b": {}}`, map[string]*Node{
			"$": {ID: "$", Type: Object, Keys: []Key{Field("a"), Field("b")},
				Offset: 0, Length: 28, BoundOffset: 0, BoundLength: 28},
			"$.a": {ID: "$.a", Type: Array, RawKey: `"a"`, Keys: []Key{Index(0), Index(1)},
				Offset: 6, Length: 12, BoundOffset: 1, BoundLength: 17},
			"$.a[0]": {ID: "$.a[0]", Type: Bool, Value: true, Raw: "true",
				Offset: 7, Length: 4, BoundOffset: 7, BoundLength: 4},
			"$.a[1]": {ID: "$.a[1]", Type: Null, Raw: "null",
				Offset: 13, Length: 4, BoundOffset: 13, BoundLength: 4},
			"$.b": {ID: "$.b", Type: Object, RawKey: `"b"`,
				Offset: 25, Length: 2, BoundOffset: 20, BoundLength: 7},
		}},
		{` ["xA", {"a.b":-2e3}] `, map[string]*Node{
			"$": {ID: "$", Type: Array, Keys: []Key{Index(0), Index(1)},
				Offset: 1, Length: 20, BoundOffset: 1, BoundLength: 20},
			"$[0]": {ID: "$[0]", Type: String, Value: "xA", Raw: `"xA"`,
				Offset: 2, Length: 4, BoundOffset: 2, BoundLength: 4},
			"$[1]": {ID: "$[1]", Type: Object, Keys: []Key{Field("a.b")},
				Offset: 8, Length: 12, BoundOffset: 8, BoundLength: 12},
			`$[1]["a.b"]`: {ID: `$[1]["a.b"]`, Type: Number, Value: -2e3, Raw: "-2e3", RawKey: `"a.b"`,
				Offset: 15, Length: 4, BoundOffset: 9, BoundLength: 10},
		}},
	}
	for _, test := range tests {
		tree := Parse(test.have)
		if tree.HasError() {
			t.Fatalf("parse %s: %v", test.have, tree.Errors())
		}
		if diff := cmp.Diff(test.want, tree.nodes); diff != "" {
			t.Errorf("parse %s: (-want +got)\n%s", test.have, diff)
		}
	}
}

func TestParseErr(t *testing.T) {
	tests := []struct {
		have string
		want ParseError
	}{
		{"", ParseError{msg: "value"}},
		{"null 5", ParseError{
			msg:    "end of input",
			token:  token{Type: numberToken, Value: "5", Offset: 5, Position: [2]int{0, 5}},
			before: token{Type: nullToken, Value: "null", Position: [2]int{0, 0}},
		}},
		{`{"a": nul}`, ParseError{
			msg:        "value",
			token:      token{Value: "nul", Offset: 6, Position: [2]int{0, 6}},
			before:     token{Type: colonToken, Value: ":", Offset: 4, Position: [2]int{0, 4}},
			parentType: Object,
			key:        "$",
		}},
		{"{", ParseError{
			msg:        "key",
			before:     token{Type: objectOToken, Value: "{", Position: [2]int{0, 0}},
			parentType: Object,
			key:        "$",
		}},
		{`[{"b":}]`, ParseError{
			msg:        "value",
			token:      token{Type: objectCToken, Value: "}", Offset: 6, Position: [2]int{0, 6}},
			before:     token{Type: colonToken, Value: ":", Offset: 5, Position: [2]int{0, 5}},
			parentType: Object,
			key:        "$[0]",
		}},
		{`[{"b":true},false,5.2,]`, ParseError{
			msg:        "value",
			token:      token{Type: arrayCToken, Value: "]", Offset: 22, Position: [2]int{0, 22}},
			before:     token{Type: commaToken, Value: ",", Offset: 21, Position: [2]int{0, 21}},
			parentType: Array,
			key:        "$",
		}},
		{`{"index":[{"inner":[null,true]}}]`, ParseError{
			msg:        "array closing",
			token:      token{Type: objectCToken, Value: "}", Offset: 31, Position: [2]int{0, 31}},
			before:     token{Type: objectCToken, Value: "}", Offset: 30, Position: [2]int{0, 30}},
			parentType: Array,
			key:        "$.index",
		}},
		{`{"a":1,"a":2}`, ParseError{
			msg:        "unique key",
			token:      token{Type: stringToken, Value: `"a"`, Offset: 7, Position: [2]int{0, 7}},
			before:     token{Type: commaToken, Value: ",", Offset: 6, Position: [2]int{0, 6}},
			parentType: Object,
			key:        "$",
		}},
		{`[01]`, ParseError{
			msg:        "number",
			token:      token{Type: numberToken, Value: "01", Offset: 1, Position: [2]int{0, 1}},
			before:     token{Type: arrayOToken, Value: "[", Position: [2]int{0, 0}},
			parentType: Array,
			key:        "$",
		}},
		{`abcdefghij`, ParseError{
			msg:   "value",
			token: token{Value: "abcdefghij", Position: [2]int{0, 0}},
		}},
	}
	for _, test := range tests {
		tree := Parse(test.have)
		if len(tree.Errors()) != 1 {
			t.Fatalf("want one error for %q, got %v", test.have, tree.Errors())
		}
		pErr, ok := tree.Errors()[0].(*ParseError)
		if !ok {
			t.Fatalf("error is not of type parse error in test: %T", tree.Errors()[0])
		}
		if *pErr != test.want {
			t.Errorf("got %v, want %s, for %v", pErr, test.want.Error(), test.have)
		}
		if tree.Valid() {
			t.Errorf("tree of %q must not be valid", test.have)
		}
	}
}

func TestParseErrMessage(t *testing.T) {
	tests := []struct {
		have string
		want string
	}{
		{"", "unexpected end of input; expected value"},
		{"abcdefghij", "1:1: unexpected lex-err_abcdefghij; expected value"},
		{"null 5", "1:6: unexpected lex-num_5; expected end of input token after 'null'"},
		{`{"a":1,}`, "1:8: unexpected '}'; expected key token after ',' (in top-level Object)"},
		{`[1,`, "unexpected end of input; expected value token after ',' (in top-level Array)"},
		{`[{"b":}]`, "1:7: unexpected '}'; expected value token after ':' (at $[0] in Object)"},
		{"{\n  \"a\": [1,\n  }", "3:3: unexpected '}'; expected value token after ',' (at $.a in Array)"},
	}
	for _, test := range tests {
		errs := Parse(test.have).Errors()
		if len(errs) != 1 {
			t.Fatalf("want one error for %q, got %d", test.have, len(errs))
		}
		if got := errs[0].Error(); got != test.want {
			t.Errorf("want: %s, got: %s", test.want, got)
		}
	}
}

func TestParseErrWhere(t *testing.T) {
	tree := Parse("{\n  \"a\": [1,\n  }")
	pErr := tree.Errors()[0].(*ParseError)
	row, col := pErr.Where()
	if row != 2 || col != 2 {
		t.Errorf("want 2:2, got %d:%d", row, col)
	}
	if pErr.Offset() != 15 {
		t.Errorf("want offset 15, got %d", pErr.Offset())
	}
	if Parse("[").Errors()[0].(*ParseError).Offset() != -1 {
		t.Error("an error at the end of input has no offset")
	}
}

func TestParseRecovers(t *testing.T) {
	tree := Parse(`{"a":1,"b":[2,`)
	if !tree.HasError() || tree.Valid() {
		t.Fatal("want a tree with errors")
	}
	for _, id := range []string{"$", "$.a", "$.b", "$.b[0]"} {
		if tree.Node(id) == nil {
			t.Errorf("node %s not recovered", id)
		}
	}
	if b := tree.Node("$.b"); b.Length != 3 || b.BoundLength != 7 {
		t.Errorf("open array must end at the last token, got %+v", b)
	}
	if root := tree.Root(); root.Length != 14 {
		t.Errorf("want root length 14, got %d", root.Length)
	}
	if tree.FindNodeAtOffset(6) != nil {
		t.Error("lookups on an invalid tree must find nothing")
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		have string
		want bool
	}{
		{`{"a": [1, 2.5e-3, "x", true, false, null]}`, true},
		{`  "standalone"  `, true},
		{`{"a":1,}`, false},
		{`[1 2]`, false},
		{`"\x"`, false},
		{`-`, false},
		{`1.`, false},
		{"\"tab\tinside\"", false},
	}
	for _, test := range tests {
		if got := Valid([]byte(test.have)); got != test.want {
			t.Errorf("Valid(%q) = %v, want %v", test.have, got, test.want)
		}
	}
}
