package markdown

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark/util"

	"github.com/stateful/marknote/pkg/document"
)

// Serialize renders a tree as markdown. If root is a page, its children
// are rendered at the top level; any other node is rendered as a block
// of its own. The result ends with a line break unless it is empty.
func Serialize(root *document.Node, opts ...Option) string {
	if root == nil {
		return ""
	}

	s := &serializer{opts: newOptions(opts)}
	if root.Type() == document.PageType {
		for _, child := range root.Children() {
			s.writeNode(child, 0)
		}
	} else {
		s.writeNode(root, 0)
	}

	if len(s.lines) == 0 {
		return ""
	}
	return strings.Join(s.lines, "\n") + "\n"
}

type serializer struct {
	opts  options
	lines []string
}

func (s *serializer) writeNode(n *document.Node, depth int) {
	indent := strings.Repeat(" ", depth*s.opts.indent)

	switch n.Type() {
	case document.DividerType:
		s.lines = append(s.lines, indent+"---")
	case document.HeadingType:
		s.lines = append(s.lines, indent+strings.Repeat("#", n.Level())+" "+serializeInline(n.Delta()))
	case document.BulletedListType:
		// An empty item has no markdown form; it is written as a bare
		// marker, which reads back as a paragraph.
		s.lines = append(s.lines, strings.TrimRight(indent+"- "+serializeInline(n.Delta()), " "))
	case document.TodoListType:
		marker := "- [ ] "
		if n.Checked() {
			marker = "- [x] "
		}
		s.lines = append(s.lines, strings.TrimRight(indent+marker+serializeInline(n.Delta()), " "))
	case document.NumberedListType:
		s.lines = append(s.lines, indent+strconv.Itoa(n.Number())+". "+serializeInline(n.Delta()))
	case document.QuoteType:
		text := serializeInline(n.Delta())
		if text == "" {
			s.lines = append(s.lines, indent+">")
		} else {
			s.lines = append(s.lines, indent+"> "+text)
		}
	case document.CodeType:
		s.writeCode(n, indent)
	case document.PageType:
		// Nested pages have no markdown syntax; only their content is kept.
		for _, child := range n.Children() {
			s.writeNode(child, depth)
		}
		return
	default:
		// Paragraphs and types without markdown syntax.
		text := escapeLineStart(serializeInline(n.Delta()))
		if text == "" {
			s.lines = append(s.lines, "")
		} else {
			s.lines = append(s.lines, indent+text)
		}
	}

	for _, child := range n.Children() {
		s.writeNode(child, depth+1)
	}
}

func (s *serializer) writeCode(n *document.Node, indent string) {
	body := n.Delta().String()
	fence := strings.Repeat("`", max(3, longestRun(body, '`')+1))

	s.lines = append(s.lines, indent+fence+n.Language())
	if body != "" {
		for _, line := range strings.Split(body, "\n") {
			if line == "" {
				s.lines = append(s.lines, "")
			} else {
				s.lines = append(s.lines, indent+line)
			}
		}
	}
	s.lines = append(s.lines, indent+fence)
}

// escapeLineStart protects paragraph text that would otherwise be read
// back as a block marker.
func escapeLineStart(text string) string {
	switch {
	case strings.TrimSpace(text) == "---":
		return `\` + text
	case strings.HasPrefix(text, "#"),
		strings.HasPrefix(text, "- "),
		strings.HasPrefix(text, ">"):
		return `\` + text
	}
	if digits := countDigits(text); digits > 0 && strings.HasPrefix(text[digits:], ". ") {
		return text[:digits] + `\` + text[digits:]
	}
	return text
}

type mark int

// Marks in nesting order, outermost first. Code must stay innermost
// because code spans cannot contain other markup.
const (
	markLink mark = iota
	markBold
	markItalic
	markStrikethrough
	markCode
)

type openMark struct {
	mark mark
	href string
}

func marksOf(a document.InlineAttributes) []openMark {
	var result []openMark
	if a.Href != "" {
		result = append(result, openMark{mark: markLink, href: a.Href})
	}
	if a.Bold {
		result = append(result, openMark{mark: markBold})
	}
	if a.Italic {
		result = append(result, openMark{mark: markItalic})
	}
	if a.Strikethrough {
		result = append(result, openMark{mark: markStrikethrough})
	}
	return result
}

// inlineWriter keeps formatting marks open across neighbouring runs that
// share them, so "**a *b***" is not written as "**a*****b***".
type inlineWriter struct {
	pieces []piece
	active []openMark
}

// piece is a chunk of inline output. Emphasis and strikethrough
// delimiters are kept apart from text so their flanking can be checked
// once the whole line is known.
type piece struct {
	text    string
	delim   byte
	opening bool
	closing bool
}

func (w *inlineWriter) writeString(s string) {
	if s != "" {
		w.pieces = append(w.pieces, piece{text: s})
	}
}

func (w *inlineWriter) writeDelim(s string, opening bool) {
	w.pieces = append(w.pieces, piece{text: s, delim: s[0], opening: opening, closing: !opening})
}

func (w *inlineWriter) closeFrom(i int) {
	for j := len(w.active) - 1; j >= i; j-- {
		m := w.active[j]
		switch m.mark {
		case markLink:
			w.writeString("](" + formatHref(m.href) + ")")
		case markBold:
			w.writeDelim("**", false)
		case markItalic:
			w.writeDelim("*", false)
		case markStrikethrough:
			w.writeDelim("~~", false)
		}
	}
	w.active = w.active[:i]
}

func (w *inlineWriter) open(marks []openMark) {
	for _, m := range marks {
		switch m.mark {
		case markLink:
			w.writeString("[")
		case markBold:
			w.writeDelim("**", true)
		case markItalic:
			w.writeDelim("*", true)
		case markStrikethrough:
			w.writeDelim("~~", true)
		}
		w.active = append(w.active, m)
	}
}

func (w *inlineWriter) write(op document.Op) {
	text := strings.ReplaceAll(op.Text, "\n", " ")
	want := marksOf(op.Attributes)

	lead, core, trail := splitSpace(text)
	if op.Attributes.Code {
		lead, core, trail = "", text, ""
	}
	if core == "" {
		// Whitespace cannot be formatted in markdown.
		w.closeFrom(0)
		w.writeString(text)
		return
	}

	keep := 0
	for keep < len(w.active) && keep < len(want) && w.active[keep] == want[keep] {
		keep++
	}
	w.closeFrom(keep)
	w.writeString(lead)
	w.open(want[keep:])

	if op.Attributes.Code {
		w.writeString(codeSpan(core))
	} else {
		w.writeString(escapeText(core))
	}

	if trail != "" {
		w.closeFrom(0)
		w.writeString(trail)
	}
}

// String returns the written markup. Delimiter runs that would not be
// read back as emphasis get a neighbouring letter written as a character
// reference, which turns it into punctuation for the flanking rules.
func (w *inlineWriter) String() string {
	w.closeFrom(0)
	for w.fixFlanking() {
	}

	var b strings.Builder
	for _, p := range w.pieces {
		_, _ = b.WriteString(p.text)
	}
	return strings.TrimFunc(b.String(), func(r rune) bool { return r == ' ' || r == '\t' })
}

func (w *inlineWriter) fixFlanking() bool {
	for i := 0; i < len(w.pieces); {
		if w.pieces[i].delim == 0 {
			i++
			continue
		}

		// A run is every adjacent delimiter of the same character.
		j, opening, closing := i, false, false
		for ; j < len(w.pieces) && w.pieces[j].delim == w.pieces[i].delim; j++ {
			opening = opening || w.pieces[j].opening
			closing = closing || w.pieces[j].closing
		}

		before, after := w.lastRune(i-1), w.firstRune(j)
		left, right := flanking(before, after)
		switch {
		case opening && !left && w.encodeLast(i-1):
			return true
		case w.pieces[i].delim == '~' && before == '~' && w.encodeEscapedTilde(i-1):
			// A tilde right before a strikethrough run makes the run literal.
			return true
		case closing && !right && w.encodeFirst(j):
			return true
		}
		i = j
	}
	return false
}

// flanking reports whether a delimiter run between before and after is
// left-flanking and right-flanking.
func flanking(before, after rune) (left, right bool) {
	beforePunct, beforeSpace := util.IsPunctRune(before), util.IsSpaceRune(before)
	afterPunct, afterSpace := util.IsPunctRune(after), util.IsSpaceRune(after)
	left = !afterSpace && (!afterPunct || beforeSpace || beforePunct)
	right = !beforeSpace && (!beforePunct || afterSpace || afterPunct)
	return left, right
}

func (w *inlineWriter) lastRune(i int) rune {
	for ; i >= 0; i-- {
		if s := w.pieces[i].text; s != "" {
			r, _ := utf8.DecodeLastRuneInString(s)
			return r
		}
	}
	return ' '
}

func (w *inlineWriter) firstRune(i int) rune {
	for ; i < len(w.pieces); i++ {
		if s := w.pieces[i].text; s != "" {
			r, _ := utf8.DecodeRuneInString(s)
			return r
		}
	}
	return ' '
}

func (w *inlineWriter) encodeLast(i int) bool {
	if i < 0 || w.pieces[i].delim != 0 {
		return false
	}
	s := w.pieces[i].text
	r, size := utf8.DecodeLastRuneInString(s)
	if !encodable(r) {
		return false
	}
	w.pieces[i].text = s[:len(s)-size] + charRef(r)
	return true
}

func (w *inlineWriter) encodeFirst(i int) bool {
	if i >= len(w.pieces) || w.pieces[i].delim != 0 {
		return false
	}
	s := w.pieces[i].text
	r, size := utf8.DecodeRuneInString(s)
	if !encodable(r) {
		return false
	}
	w.pieces[i].text = charRef(r) + s[size:]
	return true
}

func (w *inlineWriter) encodeEscapedTilde(i int) bool {
	if i < 0 || w.pieces[i].delim != 0 || !strings.HasSuffix(w.pieces[i].text, `\~`) {
		return false
	}
	s := w.pieces[i].text
	w.pieces[i].text = s[:len(s)-2] + charRef('~')
	return true
}

func encodable(r rune) bool {
	return r != utf8.RuneError && !util.IsPunctRune(r) && !util.IsSpaceRune(r)
}

func charRef(r rune) string {
	return "&#" + strconv.Itoa(int(r)) + ";"
}

func serializeInline(d document.Delta) string {
	var w inlineWriter
	for _, op := range d.Ops() {
		w.write(op)
	}
	return w.String()
}

func splitSpace(s string) (string, string, string) {
	core := strings.TrimLeftFunc(s, unicode.IsSpace)
	lead := s[:len(s)-len(core)]
	trimmed := strings.TrimRightFunc(core, unicode.IsSpace)
	return lead, trimmed, core[len(trimmed):]
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	"&", "&amp;",
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"~", `\~`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

func codeSpan(s string) string {
	fence := strings.Repeat("`", longestRun(s, '`')+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") ||
		(strings.HasPrefix(s, " ") && strings.HasSuffix(s, " ") && strings.TrimSpace(s) != "") {
		s = " " + s + " "
	}
	return fence + s + fence
}

func formatHref(href string) string {
	if strings.ContainsAny(href, " ()<>") {
		return "<" + strings.NewReplacer("<", `\<`, ">", `\>`).Replace(href) + ">"
	}
	return href
}

func longestRun(s string, c rune) int {
	longest, current := 0, 0
	for _, r := range s {
		if r == c {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return longest
}
