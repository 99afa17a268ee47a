package document

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidPath is returned when a path does not resolve against the tree.
	ErrInvalidPath = errors.New("invalid path")
	// ErrInvalidOperation is returned for well-addressed but disallowed edits,
	// for example deleting the root.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrInvalidAttributes is returned when a node's attributes do not match
	// the schema of its type.
	ErrInvalidAttributes = errors.New("invalid attributes")
	// ErrUnknownType is returned when a node type has no registered schema.
	ErrUnknownType = errors.New("unknown node type")
)

// ApplyError describes the operation that caused a transaction to be rejected.
type ApplyError struct {
	Index int
	Op    Operation
	Err   error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("failed to apply op %d (%s): %v", e.Index, e.Op.Name(), e.Err)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}
