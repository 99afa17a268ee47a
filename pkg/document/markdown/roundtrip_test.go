package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stateful/marknote/pkg/document"
)

func TestRoundTrip_FactoryTrees(t *testing.T) {
	rich := document.NewDelta(
		run("plain ", document.InlineAttributes{}),
		run("bold", document.InlineAttributes{Bold: true}),
		run(" and ", document.InlineAttributes{}),
		run("it", document.InlineAttributes{Italic: true}),
		run(" ", document.InlineAttributes{}),
		run("x*y", document.InlineAttributes{Code: true}),
		run(" ", document.InlineAttributes{}),
		run("gone", document.InlineAttributes{Strikethrough: true}),
		run(" see ", document.InlineAttributes{}),
		run("docs", document.InlineAttributes{Href: "https://example.com/a_b"}),
	)

	testCases := []struct {
		name string
		tree *document.Node
	}{
		{
			name: "blocks",
			tree: document.Page(
				heading(1, text("Title")),
				heading(6, text("Deep")),
				document.BulletedList(text("item one")),
				document.NumberedList(12, text("twelve")),
				document.Divider(),
				document.Paragraph(text("Plain text.")),
			),
		},
		{
			name: "nested",
			tree: document.Page(
				document.BulletedList(text("a"),
					document.BulletedList(text("b"),
						document.NumberedList(1, text("c"),
							document.TodoList(text("d"), true),
						),
					),
					document.Quote(text("e")),
				),
				document.TodoList(text("f"), false),
				document.BulletedList(text("g"), document.Divider()),
			),
		},
		{
			name: "inline",
			tree: document.Page(
				document.Paragraph(rich),
				heading(2, document.NewDelta(
					run("a", document.InlineAttributes{Bold: true}),
					run("b", document.InlineAttributes{Bold: true, Italic: true}),
				)),
			),
		},
		{
			name: "lookalikes",
			tree: document.Page(
				document.Paragraph(text("# not a heading")),
				document.Paragraph(text("- not a list")),
				document.Paragraph(text("3. not a list")),
				document.Paragraph(text("> not a quote")),
				document.Paragraph(text("---")),
				document.Paragraph(text("```not code")),
				document.Paragraph(text(`*a* _b_ [c](d) <e> \f ~~g~~`)),
				document.BulletedList(text("[ ] not a todo")),
			),
		},
		{
			name: "marks next to punctuation",
			tree: document.Page(
				document.Paragraph(document.NewDelta(
					run("a.", document.InlineAttributes{Bold: true}),
					run("b", document.InlineAttributes{}),
				)),
				document.Paragraph(document.NewDelta(
					run("a", document.InlineAttributes{}),
					run(".b", document.InlineAttributes{Italic: true}),
				)),
				document.Paragraph(document.NewDelta(
					run("x", document.InlineAttributes{}),
					run("(y)", document.InlineAttributes{Strikethrough: true}),
					run("z", document.InlineAttributes{}),
				)),
				document.Paragraph(document.NewDelta(
					run("a", document.InlineAttributes{}),
					run("x", document.InlineAttributes{Bold: true, Code: true}),
					run("b", document.InlineAttributes{}),
				)),
				document.Paragraph(document.NewDelta(
					run("a~", document.InlineAttributes{}),
					run("b", document.InlineAttributes{Strikethrough: true}),
				)),
				heading(2, document.NewDelta(
					run("1", document.InlineAttributes{}),
					run(". x", document.InlineAttributes{Bold: true}),
				)),
			),
		},
		{
			name: "ampersands",
			tree: document.Page(
				document.Paragraph(text("a & b &#38; c &amp; d")),
				document.Paragraph(document.NewDelta(
					run("&x", document.InlineAttributes{Italic: true}),
					run("y", document.InlineAttributes{}),
				)),
			),
		},
		{
			name: "code and empty blocks",
			tree: document.Page(
				document.Code("go", "func f() string {\n\treturn \"```\"\n}\n\n// end"),
				document.Paragraph(document.Delta{}),
				document.Quote(document.Delta{}),
				document.BulletedList(text("x"), document.Code("", "  indented\nline")),
			),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			serialized := Serialize(tc.tree)
			parsed := Parse(serialized)
			requireTreeEqual(t, tc.tree, parsed)

			// Serialized output is a fixed point.
			assert.Equal(t, serialized, Serialize(parsed))
		})
	}
}

func TestRoundTrip_Indent(t *testing.T) {
	tree := document.Page(
		document.BulletedList(text("a"),
			document.BulletedList(text("b")),
		),
	)
	for _, indent := range []int{1, 2, 3, 4, 8} {
		opts := []Option{WithIndent(indent)}
		requireTreeEqual(t, tree, Parse(Serialize(tree, opts...), opts...))
	}
}

func TestRoundTrip_Text(t *testing.T) {
	// Hand-written input is normalized once and stable afterwards.
	input := "#   Title\n* star\n- [X] done\n1. one\n    - over-indented\n__strong__ and _em_\n"
	expected := "# Title\n\\* star\n- [x] done\n1. one\n  - over-indented\n**strong** and *em*\n"

	first := Serialize(Parse(input))
	assert.Equal(t, expected, first)
	assert.Equal(t, first, Serialize(Parse(first)))
}

func TestRoundTrip_Normalized(t *testing.T) {
	// Trees without an exact markdown form are normalized on the first
	// pass and stable afterwards.
	testCases := []struct {
		name       string
		tree       *document.Node
		serialized string
		parsed     *document.Node
	}{
		{
			name:       "trailing whitespace",
			tree:       document.Page(document.Paragraph(text("a "))),
			serialized: "a\n",
			parsed:     document.Page(document.Paragraph(text("a"))),
		},
		{
			name:       "empty bullet",
			tree:       document.Page(document.BulletedList(document.Delta{})),
			serialized: "-\n",
			parsed:     document.Page(document.Paragraph(text("-"))),
		},
		{
			name:       "nested empty bullet",
			tree:       document.Page(document.BulletedList(text("a"), document.BulletedList(document.Delta{}))),
			serialized: "- a\n  -\n",
			parsed:     document.Page(document.BulletedList(text("a"), document.Paragraph(text("-")))),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			serialized := Serialize(tc.tree)
			assert.Equal(t, tc.serialized, serialized)

			parsed := Parse(serialized)
			requireTreeEqual(t, tc.parsed, parsed)
			assert.Equal(t, serialized, Serialize(parsed))
		})
	}
}
