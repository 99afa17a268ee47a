package document

import (
	"math"

	"github.com/pkg/errors"
)

// New builds a node of the given type and validates it against the
// registered schema. It is meant for input coming from outside of the
// program, like decoded JSON. Prefer the typed constructors in code.
func New(t NodeType, attrs Attributes, delta Delta, children ...*Node) (*Node, error) {
	schema, err := lookupSchema(t)
	if err != nil {
		return nil, err
	}

	if err := schema.validate(attrs); err != nil {
		return nil, err
	}

	if !schema.HasDelta && !delta.IsEmpty() {
		return nil, errors.Wrapf(ErrInvalidAttributes, "%s: type does not have delta", t)
	}

	for i, child := range children {
		if child == nil {
			return nil, errors.Wrapf(ErrInvalidOperation, "%s: child %d is nil", t, i)
		}
	}

	return &Node{
		typ:      t,
		attrs:    attrs.Clone(),
		delta:    delta,
		hasDelta: schema.HasDelta,
		children: compactChildren(append([]*Node(nil), children...)),
	}, nil
}

// mustNew is used by the typed constructors whose arguments cannot
// produce invalid attributes. It panics on nil children.
func mustNew(t NodeType, attrs Attributes, delta Delta, children ...*Node) *Node {
	n, err := New(t, attrs, delta, children...)
	if err != nil {
		panic(err)
	}
	return n
}

// Page returns the document root.
func Page(children ...*Node) *Node {
	return mustNew(PageType, nil, Delta{}, children...)
}

// EmptyPage returns a document with a single empty paragraph.
func EmptyPage() *Node {
	return Page(Paragraph(Delta{}))
}

func Paragraph(d Delta, children ...*Node) *Node {
	return mustNew(ParagraphType, nil, d, children...)
}

// Heading returns a heading of the given level. The level must be in
// range [MinHeadingLevel, MaxHeadingLevel].
func Heading(level int, d Delta, children ...*Node) (*Node, error) {
	return New(HeadingType, Attributes{LevelKey: Int(int64(level))}, d, children...)
}

func BulletedList(d Delta, children ...*Node) *Node {
	return mustNew(BulletedListType, nil, d, children...)
}

// NumberedList returns a numbered item. Numbers above math.MaxInt64 are
// clamped to it.
func NumberedList(number uint, d Delta, children ...*Node) *Node {
	n := int64(math.MaxInt64)
	if uint64(number) < math.MaxInt64 {
		n = int64(number)
	}
	return mustNew(NumberedListType, Attributes{NumberKey: Int(n)}, d, children...)
}

func TodoList(d Delta, checked bool, children ...*Node) *Node {
	return mustNew(TodoListType, Attributes{CheckedKey: Bool(checked)}, d, children...)
}

func Quote(d Delta, children ...*Node) *Node {
	return mustNew(QuoteType, nil, d, children...)
}

// Code returns a code block. An empty language is omitted from attributes.
func Code(language, text string) *Node {
	var attrs Attributes
	if language != "" {
		attrs = Attributes{LanguageKey: String(language)}
	}
	return mustNew(CodeType, attrs, Text(text))
}

func Divider() *Node {
	return mustNew(DividerType, nil, Delta{})
}
