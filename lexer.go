package jsontree

// lexer gnereates tokens from json
// after sending an error token the lexer has to quit
type lexer struct {
	data     string
	start    int
	pos      int
	out      chan<- token
	quit     <-chan struct{}
	row, col int
}

type lexFunc func(*lexer) lexFunc

func lexSend(l *lexer, f lexFunc, t token) lexFunc {
	select {
	case <-l.quit:
		return nil
	case l.out <- t:
		return f
	}
}

// emit sends the pending text data[start:pos] as a token of type tt and
// moves start behind it.
func (l *lexer) emit(tt tokenType, f lexFunc) lexFunc {
	t := token{
		Type:     tt,
		Value:    l.data[l.start:l.pos],
		Offset:   l.start,
		Position: [2]int{l.row, l.col},
	}
	l.col += l.pos - l.start
	l.start = l.pos
	return lexSend(l, f, t)
}

// lex reads in a json string and generate tokens for the parser.
func lex(data string) (stream <-chan token, quit func()) {
	ch := make(chan token, 1)
	q := make(chan struct{})
	l := &lexer{
		data: data,
		out:  ch,
		quit: q,
	}
	go func() {
		for f := lexFunc(noneMode); f != nil; f = f(l) {
		}
		close(l.out)
	}()
	return ch, func() { close(q) }
}

func noneMode(l *lexer) lexFunc {
	if l.pos >= len(l.data) {
		return nil
	}
	switch b := l.data[l.pos]; b {
	case ' ', '\t', '\r':
		l.pos++
		l.start = l.pos
		l.col++
		return noneMode
	case '\n':
		l.pos++
		l.start = l.pos
		l.col = 0
		l.row++
		return noneMode
	case '{', '}', '[', ']', ',', ':':
		t := newToken(b, l.pos, l.row, l.col)
		l.pos++
		l.start = l.pos
		l.col++
		return lexSend(l, noneMode, t)
	case '"':
		l.pos++
		return stringMode
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return numberMode
	default:
		return otherMode
	}
}

// stringMode consumes a string up to its closing quote. Escapes are only
// skipped here, the parser decodes and validates them.
func stringMode(l *lexer) lexFunc {
	for l.pos < len(l.data) {
		switch c := l.data[l.pos]; {
		case c == '\\':
			l.pos += 2
		case c == '"':
			l.pos++
			return l.emit(stringToken, noneMode)
		case c < 0x20:
			return l.emit(errToken, nil)
		default:
			l.pos++
		}
	}
	l.pos = len(l.data)
	return l.emit(errToken, nil)
}

func numberMode(l *lexer) lexFunc {
	for l.pos < len(l.data) {
		switch l.data[l.pos] {
		case '-', '+', 'e', 'E', '.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			l.pos++
			continue
		}
		break
	}
	return l.emit(numberToken, noneMode)
}

// otherMode reads a bare word and matches it against the json keywords.
func otherMode(l *lexer) lexFunc {
outer:
	for l.pos < len(l.data) {
		switch l.data[l.pos] {
		case ' ', '\t', '\r', '\n', '{', '}', '[', ']', ',', ':', '"':
			break outer
		}
		l.pos++
	}
	switch l.data[l.start:l.pos] {
	case "null":
		return l.emit(nullToken, noneMode)
	case "true":
		return l.emit(trueToken, noneMode)
	case "false":
		return l.emit(falseToken, noneMode)
	}
	return l.emit(errToken, nil)
}
