package document

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Transaction is an ordered batch of operations applied as a unit.
// Paths in later operations refer to the tree as modified by the
// earlier ones.
type Transaction struct {
	ops []Operation
}

func NewTransaction(ops ...Operation) *Transaction {
	return &Transaction{ops: append([]Operation(nil), ops...)}
}

func (t *Transaction) Insert(p Path, n *Node) *Transaction {
	t.ops = append(t.ops, InsertNode{Path: p.Clone(), Node: n})
	return t
}

func (t *Transaction) Delete(p Path) *Transaction {
	t.ops = append(t.ops, DeleteNode{Path: p.Clone()})
	return t
}

func (t *Transaction) Update(p Path, n *Node) *Transaction {
	t.ops = append(t.ops, UpdateNode{Path: p.Clone(), Node: n})
	return t
}

func (t *Transaction) Move(from, to Path) *Transaction {
	t.ops = append(t.ops, MoveNode{From: from.Clone(), To: to.Clone()})
	return t
}

func (t *Transaction) Operations() []Operation {
	return append([]Operation(nil), t.ops...)
}

func (t *Transaction) Len() int { return len(t.ops) }

// Apply runs all operations in order and returns the new root.
// If any operation fails, an *ApplyError is returned and root,
// which is never modified, remains the valid tree.
func (t *Transaction) Apply(root *Node) (*Node, error) {
	if root == nil {
		return nil, errors.Wrap(ErrInvalidPath, "empty tree")
	}

	current := root
	for i, op := range t.ops {
		if op == nil {
			return nil, &ApplyError{Index: i, Op: nilOperation{}, Err: errors.WithStack(ErrInvalidOperation)}
		}
		next, err := op.Apply(current)
		if err != nil {
			return nil, &ApplyError{Index: i, Op: op, Err: err}
		}
		current = next
	}
	return current, nil
}

type nilOperation struct{}

func (nilOperation) Name() string { return "nil" }
func (nilOperation) isOperation() {}

func (nilOperation) Apply(*Node) (*Node, error) {
	return nil, errors.WithStack(ErrInvalidOperation)
}

type jsonOperation struct {
	Op   string `json:"op"`
	Path Path   `json:"path,omitempty"`
	From Path   `json:"from,omitempty"`
	To   Path   `json:"to,omitempty"`
	Node *Node  `json:"node,omitempty"`
}

func (t *Transaction) MarshalJSON() ([]byte, error) {
	result := make([]jsonOperation, 0, len(t.ops))
	for _, op := range t.ops {
		switch o := op.(type) {
		case InsertNode:
			result = append(result, jsonOperation{Op: o.Name(), Path: o.Path, Node: o.Node})
		case DeleteNode:
			result = append(result, jsonOperation{Op: o.Name(), Path: o.Path})
		case UpdateNode:
			result = append(result, jsonOperation{Op: o.Name(), Path: o.Path, Node: o.Node})
		case MoveNode:
			result = append(result, jsonOperation{Op: o.Name(), From: o.From, To: o.To})
		default:
			return nil, errors.Errorf("unsupported operation %T", op)
		}
	}
	return json.Marshal(result)
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	var raw []jsonOperation
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "failed to unmarshal transaction")
	}

	ops := make([]Operation, 0, len(raw))
	for i, item := range raw {
		switch item.Op {
		case "insert":
			ops = append(ops, InsertNode{Path: item.Path, Node: item.Node})
		case "delete":
			ops = append(ops, DeleteNode{Path: item.Path})
		case "update":
			ops = append(ops, UpdateNode{Path: item.Path, Node: item.Node})
		case "move":
			ops = append(ops, MoveNode{From: item.From, To: item.To})
		default:
			return errors.Errorf("operation %d: unknown op %q", i, item.Op)
		}
	}
	t.ops = ops
	return nil
}
