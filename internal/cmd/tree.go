package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/marknote/internal/config"
	"github.com/stateful/marknote/pkg/document"
	"github.com/stateful/marknote/pkg/document/editor"
)

type treeStyles struct {
	path  lipgloss.Style
	typ   lipgloss.Style
	attrs lipgloss.Style
}

func newTreeStyles(r *lipgloss.Renderer) treeStyles {
	return treeStyles{
		path:  r.NewStyle().Faint(true),
		typ:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		attrs: r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func treeCmd(cFlags *commonFlags) *cobra.Command {
	var conditions []string

	cmd := cobra.Command{
		Use:   "tree <file>",
		Short: "Print an outline of the document tree of a markdown file.",
		Long: `Tree prints one line per block with its path, type, and text.

Blocks can be selected with --filter using the expr language, for example

  marknote tree --filter "type == 'heading' && level <= 2" README.md

Available variables: type, path, depth, text, level, number, checked,
language, children. Filters from the configuration file apply as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := append([]*config.Filter(nil), cFlags.cfg.Filters...)
			for _, c := range conditions {
				filters = append(filters, config.NewFilter(c))
			}
			for _, f := range filters {
				if err := f.Compile(); err != nil {
					return err
				}
			}

			state, err := loadState(cmd, cFlags, args[0])
			if err != nil {
				return err
			}

			styles := newTreeStyles(lipgloss.NewRenderer(cmd.OutOrStdout()))

			var b strings.Builder
			for _, block := range state.Blocks() {
				ok, err := config.MatchAll(filters, blockEnv(block))
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
				_, _ = b.WriteString(styles.render(block))
				_ = b.WriteByte('\n')
			}

			_, err = cmd.OutOrStdout().Write([]byte(b.String()))
			return errors.Wrap(err, "failed to write result")
		},
	}

	cmd.Flags().StringArrayVar(&conditions, "filter", nil, "Show only blocks for which the expression is true. Can be repeated.")

	return &cmd
}

func (s treeStyles) render(b editor.Block) string {
	n := b.Node

	line := strings.Repeat("  ", b.Depth) + s.path.Render(b.Path.String()) + " " + s.typ.Render(string(n.Type()))
	if attrs := describeAttributes(n); attrs != "" {
		line += " " + s.attrs.Render(attrs)
	}
	if text := n.Delta().String(); text != "" {
		line += " " + strings.ReplaceAll(text, "\n", `\n`)
	}
	return line
}

func describeAttributes(n *document.Node) string {
	switch n.Type() {
	case document.HeadingType:
		return fmt.Sprintf("[level=%d]", n.Level())
	case document.NumberedListType:
		return fmt.Sprintf("[number=%d]", n.Number())
	case document.TodoListType:
		return fmt.Sprintf("[checked=%t]", n.Checked())
	case document.CodeType:
		if n.Language() != "" {
			return fmt.Sprintf("[language=%s]", n.Language())
		}
	}
	return ""
}

func blockEnv(b editor.Block) config.BlockEnv {
	n := b.Node
	return config.BlockEnv{
		Type:     string(n.Type()),
		Path:     b.Path.String(),
		Depth:    b.Depth,
		Text:     n.Delta().String(),
		Level:    n.Level(),
		Number:   n.Number(),
		Checked:  n.Checked(),
		Language: n.Language(),
		Children: n.ChildCount(),
	}
}
