package jsontree

// Valid reports whether data is a valid JSON encoding.
func Valid(data []byte) bool {
	_, err := parse(lex(string(data)))
	return err == nil
}

// Marshal returns the JSON encoding of v, see FromGo. opts are applied as
// in Stringify.
func Marshal(v interface{}, opts ...Option) ([]byte, error) {
	t, err := FromGo(v)
	if err != nil {
		return nil, err
	}
	return []byte(t.Stringify(append(opts, Pure())...)), nil
}
