package markdown

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	gmparser "github.com/yuin/goldmark/parser"
	gmtext "github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/stateful/marknote/pkg/document"
)

// inlineParser only knows paragraphs, so the text of a single block is
// never reinterpreted as another block. Link reference definitions are
// not supported, hence no paragraph transformers.
var inlineParser = gmparser.NewParser(
	gmparser.WithBlockParsers(
		util.Prioritized(gmparser.NewParagraphParser(), 1000),
	),
	gmparser.WithInlineParsers(
		append(
			gmparser.DefaultInlineParsers(),
			util.Prioritized(extension.NewStrikethroughParser(), 500),
		)...,
	),
)

// parseInline converts the text of one block into a delta.
// Unterminated markers are kept as literal text.
func parseInline(s string) document.Delta {
	if s == "" {
		return document.Delta{}
	}

	source := []byte(s)
	root := inlineParser.Parse(gmtext.NewReader(source))

	var ops []document.Op
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		ops = collectInline(child, source, document.InlineAttributes{}, ops)
	}
	return document.NewDelta(ops...)
}

func collectInline(parent ast.Node, source []byte, attrs document.InlineAttributes, ops []document.Op) []document.Op {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Text:
			value := node.Segment.Value(source)
			if !node.IsRaw() {
				value = resolveText(value)
			}
			ops = append(ops, document.Op{Text: string(value), Attributes: attrs})
			if node.SoftLineBreak() || node.HardLineBreak() {
				ops = append(ops, document.Op{Text: " ", Attributes: attrs})
			}
		case *ast.String:
			ops = append(ops, document.Op{Text: string(node.Value), Attributes: attrs})
		case *ast.CodeSpan:
			a := attrs
			a.Code = true
			ops = append(ops, document.Op{Text: string(rawText(node, source)), Attributes: a})
		case *ast.Emphasis:
			a := attrs
			if node.Level >= 2 {
				a.Bold = true
			} else {
				a.Italic = true
			}
			ops = collectInline(node, source, a, ops)
		case *extast.Strikethrough:
			a := attrs
			a.Strikethrough = true
			ops = collectInline(node, source, a, ops)
		case *ast.Link:
			a := attrs
			a.Href = string(node.Destination)
			ops = collectInline(node, source, a, ops)
		case *ast.Image:
			// Images are not part of the model; keep them as links to
			// their destination with the alt text as content.
			a := attrs
			a.Href = string(node.Destination)
			ops = collectInline(node, source, a, ops)
		case *ast.AutoLink:
			a := attrs
			a.Href = string(node.URL(source))
			ops = append(ops, document.Op{Text: string(node.Label(source)), Attributes: a})
		case *ast.RawHTML:
			for i := 0; i < node.Segments.Len(); i++ {
				segment := node.Segments.At(i)
				ops = append(ops, document.Op{Text: string(segment.Value(source)), Attributes: attrs})
			}
		default:
			ops = collectInline(node, source, attrs, ops)
		}
	}
	return ops
}

// resolveText replaces character references and backslash escapes in
// the text between inline markup.
func resolveText(value []byte) []byte {
	value = util.ResolveNumericReferences(value)
	value = util.ResolveEntityNames(value)
	return util.UnescapePunctuations(value)
}

func rawText(n ast.Node, source []byte) []byte {
	var result []byte
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			result = append(result, t.Segment.Value(source)...)
		}
	}
	return result
}
