// Package markdown converts between markdown source text and document trees.
//
// The format is line oriented: every block node is one line (code blocks
// span several), children are indented below their parent, and inline
// formatting is expressed with the usual emphasis, code span, strikethrough
// and link syntax.
package markdown

const DefaultIndent = 2

type options struct {
	indent int
}

type Option func(*options)

// WithIndent sets the number of spaces per nesting level.
// Values below 1 are ignored.
func WithIndent(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.indent = n
		}
	}
}

func newOptions(opts []Option) options {
	o := options{indent: DefaultIndent}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
