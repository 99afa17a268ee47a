package markdown

import (
	"strconv"
	"strings"

	"github.com/stateful/marknote/pkg/document"
)

// block is a mutable stand-in for a node while its children are collected.
type block struct {
	node     *document.Node
	children []*block
}

func (b *block) build() *document.Node {
	if len(b.children) == 0 {
		return b.node
	}
	children := make([]*document.Node, 0, len(b.children))
	for _, c := range b.children {
		children = append(children, c.build())
	}
	return b.node.WithChildren(children...)
}

// Parse converts markdown source into a page node. It never fails: lines
// that match no block syntax become paragraphs.
func Parse(src string, opts ...Option) *document.Node {
	p := &parser{
		opts:  newOptions(opts),
		lines: splitLines(src),
	}
	return p.parse()
}

type parser struct {
	opts  options
	lines []string
	pos   int
}

func (p *parser) parse() *document.Node {
	root := &block{node: document.Page()}
	// stack[k] is the last block at depth k-1; stack[0] is the root.
	stack := []*block{root}

	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		p.pos++

		if strings.TrimSpace(line) == "" {
			root.children = append(root.children, &block{node: document.Paragraph(document.Delta{})})
			stack = stack[:1]
			continue
		}

		prefix, content := splitIndent(line)
		depth := p.depth(prefix)
		if depth > len(stack)-1 {
			depth = len(stack) - 1
		}

		b := &block{node: p.parseBlock(prefix, content)}
		parent := stack[depth]
		parent.children = append(parent.children, b)
		stack = append(stack[:depth+1], b)
	}

	return root.build()
}

func (p *parser) depth(prefix string) int {
	cols := 0
	for _, r := range prefix {
		if r == '\t' {
			cols += p.opts.indent
		} else {
			cols++
		}
	}
	return cols / p.opts.indent
}

func (p *parser) parseBlock(prefix, line string) *document.Node {
	if strings.TrimSpace(line) == "---" {
		return document.Divider()
	}

	if fence := countLeading(line, '`'); fence >= 3 {
		return p.parseCode(prefix, fence, strings.TrimSpace(line[fence:]))
	}

	if level := countLeading(line, '#'); level >= document.MinHeadingLevel && level <= document.MaxHeadingLevel &&
		len(line) > level && line[level] == ' ' {
		n, err := document.Heading(level, parseInline(line[level+1:]))
		if err == nil {
			return n
		}
	}

	if strings.HasPrefix(line, "- ") && len(line) > 2 {
		text := line[2:]
		if checked, rest, ok := cutTodoMarker(text); ok {
			return document.TodoList(parseInline(rest), checked)
		}
		return document.BulletedList(parseInline(text))
	}

	if digits := countDigits(line); digits > 0 && strings.HasPrefix(line[digits:], ". ") {
		if number, err := strconv.ParseUint(line[:digits], 10, 63); err == nil {
			return document.NumberedList(uint(number), parseInline(line[digits+2:]))
		}
	}

	if line == ">" {
		return document.Quote(document.Delta{})
	}
	if strings.HasPrefix(line, "> ") {
		return document.Quote(parseInline(line[2:]))
	}

	return document.Paragraph(parseInline(line))
}

// parseCode consumes the body of a fenced code block. A fence that is
// never closed extends to the end of the input.
func (p *parser) parseCode(prefix string, fence int, language string) *document.Node {
	var body []string
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		p.pos++

		trimmed := strings.TrimSpace(line)
		if n := countLeading(trimmed, '`'); n >= fence && n == len(trimmed) {
			break
		}

		if strings.HasPrefix(line, prefix) {
			line = line[len(prefix):]
		} else {
			line = strings.TrimLeft(line, " \t")
		}
		body = append(body, line)
	}
	return document.Code(language, strings.Join(body, "\n"))
}

func cutTodoMarker(s string) (checked bool, rest string, ok bool) {
	for _, marker := range []string{"[ ]", "[x]", "[X]"} {
		if s == marker {
			return marker != "[ ]", "", true
		}
		if strings.HasPrefix(s, marker+" ") {
			return marker != "[ ]", s[len(marker)+1:], true
		}
	}
	return false, "", false
}

func splitLines(src string) []string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	if src == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(src, "\n"), "\n")
}

func splitIndent(line string) (string, string) {
	content := strings.TrimLeft(line, " \t")
	return line[:len(line)-len(content)], content
}

func countLeading(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}
