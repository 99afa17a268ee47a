package markdown

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stateful/marknote/pkg/document"
)

func heading(level int, d document.Delta, children ...*document.Node) *document.Node {
	n, err := document.Heading(level, d, children...)
	if err != nil {
		panic(err)
	}
	return n
}

func text(s string) document.Delta {
	return document.Text(s)
}

func run(s string, attrs document.InlineAttributes) document.Op {
	return document.Op{Text: s, Attributes: attrs}
}

func requireTreeEqual(t *testing.T, expected, got *document.Node) {
	t.Helper()
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s\nwant:\n%s\ngot:\n%s", diff, expected, got)
	}
}
