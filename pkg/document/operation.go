package document

import (
	"github.com/pkg/errors"
)

// Operation is a single tree edit. Apply never modifies root; it returns
// the root of a new tree that shares unchanged subtrees with the old one.
type Operation interface {
	Name() string
	Apply(root *Node) (*Node, error)

	isOperation()
}

// InsertNode inserts Node so that it ends up at Path. The last segment of
// Path is the index among the new siblings and may equal the number of
// existing children, which appends.
type InsertNode struct {
	Path Path
	Node *Node
}

func (InsertNode) Name() string { return "insert" }
func (InsertNode) isOperation() {}

func (op InsertNode) Apply(root *Node) (*Node, error) {
	if op.Node == nil {
		return nil, errors.Wrap(ErrInvalidOperation, "insert: node is nil")
	}
	if op.Path.IsRoot() {
		return nil, errors.Wrap(ErrInvalidOperation, "insert: cannot insert at the root path")
	}
	if err := validateSubtree(op.Node, false); err != nil {
		return nil, errors.WithMessage(err, "insert")
	}

	parentPath := op.Path.Parent()
	chain, err := ancestors(root, parentPath)
	if err != nil {
		return nil, err
	}
	parent := chain[len(chain)-1]

	idx := op.Path.Last()
	if idx < 0 || idx > parent.ChildCount() {
		return nil, errors.Wrapf(ErrInvalidPath, "insert: index %d out of range [0, %d] at path [%s]", idx, parent.ChildCount(), op.Path)
	}

	return rebuild(chain, parentPath, parent.insertChild(idx, op.Node)), nil
}

// DeleteNode removes the node at Path together with its subtree.
type DeleteNode struct {
	Path Path
}

func (DeleteNode) Name() string { return "delete" }
func (DeleteNode) isOperation() {}

func (op DeleteNode) Apply(root *Node) (*Node, error) {
	_, newRoot, err := detach(root, op.Path)
	return newRoot, err
}

func detach(root *Node, p Path) (*Node, *Node, error) {
	if p.IsRoot() {
		return nil, nil, errors.Wrap(ErrInvalidOperation, "cannot remove the root")
	}

	chain, err := ancestors(root, p)
	if err != nil {
		return nil, nil, err
	}
	target := chain[len(chain)-1]
	parent := chain[len(chain)-2]

	newRoot := rebuild(chain[:len(chain)-1], p.Parent(), parent.removeChild(p.Last()))
	return target, newRoot, nil
}

// UpdateNode replaces the node at Path, including its subtree.
type UpdateNode struct {
	Path Path
	Node *Node
}

func (UpdateNode) Name() string { return "update" }
func (UpdateNode) isOperation() {}

func (op UpdateNode) Apply(root *Node) (*Node, error) {
	if op.Node == nil {
		return nil, errors.Wrap(ErrInvalidOperation, "update: node is nil")
	}
	if op.Path.IsRoot() && op.Node.Type() != PageType {
		return nil, errors.Wrapf(ErrInvalidOperation, "update: root must be %s, got %s", PageType, op.Node.Type())
	}
	if err := validateSubtree(op.Node, op.Path.IsRoot()); err != nil {
		return nil, errors.WithMessage(err, "update")
	}

	chain, err := ancestors(root, op.Path)
	if err != nil {
		return nil, err
	}
	return rebuild(chain, op.Path, op.Node), nil
}

// MoveNode removes the subtree at From and inserts it at To. To is
// resolved against the tree after the removal.
type MoveNode struct {
	From Path
	To   Path
}

func (MoveNode) Name() string { return "move" }
func (MoveNode) isOperation() {}

func (op MoveNode) Apply(root *Node) (*Node, error) {
	if op.To.IsRoot() {
		return nil, errors.Wrap(ErrInvalidOperation, "move: cannot move to the root path")
	}

	node, tmp, err := detach(root, op.From)
	if err != nil {
		return nil, errors.WithMessage(err, "move")
	}

	return InsertNode{Path: op.To, Node: node}.Apply(tmp)
}
