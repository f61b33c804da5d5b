package jsontree

// SortOrder selects the order object keys are written in.
type SortOrder uint8

const (
	// SortNone keeps the source order.
	SortNone SortOrder = iota
	SortAsc
	SortDesc
)

type options struct {
	format   bool
	sort     SortOrder
	tabWidth int
	pure     bool
}

// Option configures Stringify, StringifyNode, StringifyNestNodes and
// Format.
type Option func(*options)

// Format pretty prints with newlines and indentation.
func Format(v bool) Option {
	return func(o *options) { o.format = v }
}

// Sort orders the emitted object keys. Unless Pure is given the stored key
// order follows the output.
func Sort(s SortOrder) Option {
	return func(o *options) { o.sort = s }
}

// TabWidth sets the number of spaces per indentation level, 2 by default.
func TabWidth(n int) Option {
	return func(o *options) { o.tabWidth = n }
}

// Pure serializes without touching the spans of the nodes or the tree text.
func Pure() Option {
	return func(o *options) { o.pure = true }
}

func newOptions(opts ...Option) *options {
	o := &options{tabWidth: 2}
	for _, opt := range opts {
		opt(o)
	}
	if o.tabWidth < 0 {
		o.tabWidth = 0
	}
	return o
}
