package document

import "github.com/pkg/errors"

// SkipChildren can be returned from a WalkFunc to skip the subtree
// of the current node.
var SkipChildren = errors.New("skip children")

type WalkFunc func(p Path, n *Node) error

// Walk visits root and its descendants depth-first in reading order.
func Walk(root *Node, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	err := walk(root, Path{}, fn)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	return err
}

func walk(n *Node, p Path, fn WalkFunc) error {
	if err := fn(p, n); err != nil {
		return err
	}
	for i, child := range n.children {
		err := walk(child, p.Child(i), fn)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// FindNode returns the path of the first node, in reading order,
// for which fn returns true.
func FindNode(root *Node, fn func(*Node) bool) (Path, *Node) {
	var (
		foundPath Path
		found     *Node
		stop      = errors.New("stop")
	)
	_ = Walk(root, func(p Path, n *Node) error {
		if fn(n) {
			foundPath, found = p, n
			return stop
		}
		return nil
	})
	return foundPath, found
}
