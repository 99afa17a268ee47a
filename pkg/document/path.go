package document

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Path addresses a node by child indices starting from the root.
// The empty path is the root. A path is only meaningful for the tree
// it was computed against.
type Path []int

func (p Path) IsRoot() bool { return len(p) == 0 }

// Parent returns the path of the parent node. The root has no parent
// and the root path is returned for it.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return Path{}
	}
	return p[:len(p)-1:len(p)-1]
}

// Last returns the index of the node within its parent, or -1 for the root.
func (p Path) Last() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

// Child returns a new path pointing to the i-th child.
func (p Path) Child(i int) Path {
	result := make(Path, len(p)+1)
	copy(result, p)
	result[len(p)] = i
	return result
}

func (p Path) Clone() Path {
	return append(Path{}, p...)
}

func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether p lies inside the subtree addressed by prefix.
func (p Path) HasPrefix(prefix Path) bool {
	return len(p) >= len(prefix) && p[:len(prefix)].Equal(prefix)
}

// String formats the path as dot separated indices. The root is "".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ".")
}

// ParsePath is the inverse of Path.String.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Path{}, nil
	}
	parts := strings.Split(s, ".")
	result := make(Path, 0, len(parts))
	for _, part := range parts {
		idx, err := strconv.Atoi(part)
		if err != nil || idx < 0 {
			return nil, errors.Wrapf(ErrInvalidPath, "malformed path %q", s)
		}
		result = append(result, idx)
	}
	return result, nil
}

// Resolve returns the node at path p.
func Resolve(root *Node, p Path) (*Node, error) {
	if root == nil {
		return nil, errors.Wrap(ErrInvalidPath, "empty tree")
	}
	current := root
	for step, idx := range p {
		child := current.Child(idx)
		if child == nil {
			return nil, errors.Wrapf(ErrInvalidPath, "node not found at path [%s] (failed at index %d, step %d)", p, idx, step)
		}
		current = child
	}
	return current, nil
}

// ancestors returns the nodes along p, from the root to the node at p.
func ancestors(root *Node, p Path) ([]*Node, error) {
	if root == nil {
		return nil, errors.Wrap(ErrInvalidPath, "empty tree")
	}
	result := make([]*Node, 0, len(p)+1)
	result = append(result, root)
	current := root
	for step, idx := range p {
		child := current.Child(idx)
		if child == nil {
			return nil, errors.Wrapf(ErrInvalidPath, "node not found at path [%s] (failed at index %d, step %d)", p, idx, step)
		}
		result = append(result, child)
		current = child
	}
	return result, nil
}

// rebuild replaces the node at p with replacement and returns the new root.
// chain must be the result of ancestors(root, p).
func rebuild(chain []*Node, p Path, replacement *Node) *Node {
	current := replacement
	for i := len(p) - 1; i >= 0; i-- {
		current = chain[i].replaceChild(p[i], current)
	}
	return current
}
