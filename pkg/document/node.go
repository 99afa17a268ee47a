package document

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Node is an immutable element of the document tree.
//
// Nodes are created with the factory functions and never change afterwards;
// every edit produces a new node sharing unchanged subtrees with the old one.
// This is what allows handing out the live tree to readers.
type Node struct {
	typ      NodeType
	attrs    Attributes
	delta    Delta
	hasDelta bool
	children []*Node
}

func (n *Node) Type() NodeType { return n.typ }

// Attributes returns a copy of the node attributes.
func (n *Node) Attributes() Attributes { return n.attrs.Clone() }

// Attribute returns a single attribute value.
func (n *Node) Attribute(key string) (Value, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// Delta returns the node content. It is empty for types without delta.
func (n *Node) Delta() Delta { return n.delta }

func (n *Node) HasDelta() bool { return n.hasDelta }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	result := make([]*Node, len(n.children))
	copy(result, n.children)
	return result
}

func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the i-th child or nil if i is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Level returns the heading level, or 0 for other nodes.
func (n *Node) Level() int {
	v, _ := n.attrs[LevelKey].AsInt()
	return int(v)
}

// Number returns the numbered list item number, or 0 for other nodes.
func (n *Node) Number() int {
	v, _ := n.attrs[NumberKey].AsInt()
	return int(v)
}

func (n *Node) Checked() bool {
	v, _ := n.attrs[CheckedKey].AsBool()
	return v
}

func (n *Node) Language() string {
	v, _ := n.attrs[LanguageKey].AsString()
	return v
}

// Equal reports whether two trees are structurally equal.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n == other {
		return true
	}
	if n.typ != other.typ ||
		n.hasDelta != other.hasDelta ||
		!n.attrs.Equal(other.attrs) ||
		!n.delta.Equal(other.delta) ||
		len(n.children) != len(other.children) {
		return false
	}
	for i := range n.children {
		if !n.children[i].Equal(other.children[i]) {
			return false
		}
	}
	return true
}

// WithAttribute returns a copy of the node with the attribute set.
// The result is validated against the node's schema.
func (n *Node) WithAttribute(key string, value Value) (*Node, error) {
	attrs := n.attrs.Clone()
	if attrs == nil {
		attrs = make(Attributes, 1)
	}
	attrs[key] = value
	return New(n.typ, attrs, n.delta, n.children...)
}

// WithDelta returns a copy of the node with new content.
func (n *Node) WithDelta(d Delta) (*Node, error) {
	if !n.hasDelta {
		return nil, errors.Wrapf(ErrInvalidOperation, "%s does not have delta", n.typ)
	}
	clone := *n
	clone.delta = d
	return &clone, nil
}

// WithChildren returns a copy of the node with the children replaced.
// It panics if any child is nil.
func (n *Node) WithChildren(children ...*Node) *Node {
	for i, child := range children {
		if child == nil {
			panic(fmt.Sprintf("document: child %d is nil", i))
		}
	}
	clone := *n
	clone.children = compactChildren(append([]*Node(nil), children...))
	return &clone
}

func (n *Node) insertChild(i int, child *Node) *Node {
	children := make([]*Node, 0, len(n.children)+1)
	children = append(children, n.children[:i]...)
	children = append(children, child)
	children = append(children, n.children[i:]...)
	clone := *n
	clone.children = children
	return &clone
}

func (n *Node) removeChild(i int) *Node {
	children := make([]*Node, 0, len(n.children)-1)
	children = append(children, n.children[:i]...)
	children = append(children, n.children[i+1:]...)
	clone := *n
	clone.children = compactChildren(children)
	return &clone
}

func (n *Node) replaceChild(i int, child *Node) *Node {
	children := make([]*Node, len(n.children))
	copy(children, n.children)
	children[i] = child
	clone := *n
	clone.children = children
	return &clone
}

func compactChildren(children []*Node) []*Node {
	if len(children) == 0 {
		return nil
	}
	return children
}

// String returns an indented dump of the tree, useful in tests and logs.
func (n *Node) String() string {
	var b strings.Builder
	n.dump(&b, 0)
	return b.String()
}

func (n *Node) dump(b *strings.Builder, depth int) {
	_, _ = b.WriteString(strings.Repeat("  ", depth))
	_, _ = b.WriteString(string(n.typ))
	for _, key := range sortedKeys(n.attrs) {
		_, _ = fmt.Fprintf(b, " %s=%s", key, n.attrs[key])
	}
	if n.hasDelta {
		_, _ = fmt.Fprintf(b, " %q", n.delta.String())
	}
	_ = b.WriteByte('\n')
	for _, child := range n.children {
		child.dump(b, depth+1)
	}
}
