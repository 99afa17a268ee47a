package editor

import (
	"github.com/stateful/marknote/pkg/document"
)

// Block is an entry of the flat view of a document.
type Block struct {
	Path  document.Path
	Depth int
	Node  *document.Node
}

// Blocks returns every node below the root in reading order. It is a
// derived view; edits still have to go through Apply.
func (s *State) Blocks() []Block {
	return Flatten(s.root)
}

func Flatten(root *document.Node) []Block {
	var result []Block
	_ = document.Walk(root, func(p document.Path, n *document.Node) error {
		if p.IsRoot() {
			return nil
		}
		result = append(result, Block{Path: p, Depth: len(p) - 1, Node: n})
		return nil
	})
	return result
}
