// Package editor owns the live document of an editor widget.
//
// A State holds exactly one tree and is the only place where transactions
// are applied to it. It is meant to be driven by a single goroutine, the one
// running the widget; it does no locking.
package editor

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stateful/marknote/internal/ulid"
	"github.com/stateful/marknote/pkg/document"
	"github.com/stateful/marknote/pkg/document/markdown"
)

// Change describes a committed edit. Transaction is nil when the whole
// document was replaced by Load.
type Change struct {
	ID          string
	Transaction *document.Transaction
	Before      *document.Node
	After       *document.Node
}

type Observer func(Change)

type subscription struct {
	id int
	fn Observer
}

type State struct {
	root       *document.Node
	logger     *zap.Logger
	mdOpts     []markdown.Option
	observers  []subscription
	observerID int
}

type Option func(*State)

func WithLogger(logger *zap.Logger) Option {
	return func(s *State) {
		s.logger = logger
	}
}

// WithMarkdownOptions configures parsing in Load and rendering in Export.
func WithMarkdownOptions(opts ...markdown.Option) Option {
	return func(s *State) {
		s.mdOpts = append(s.mdOpts, opts...)
	}
}

// New returns a state holding an empty document: a page with one
// empty paragraph.
func New(opts ...Option) *State {
	s := &State{root: document.EmptyPage()}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Load returns a state holding the document parsed from text.
func Load(text string, opts ...Option) *State {
	s := New(opts...)
	s.root = s.parse(text)
	return s
}

// Load replaces the current document with the one parsed from text.
func (s *State) Load(text string) {
	before := s.root
	s.root = s.parse(text)
	s.logger.Debug("document loaded", zap.Int("blocks", s.root.ChildCount()))
	s.notify(Change{ID: ulid.New(), Before: before, After: s.root})
}

func (s *State) parse(text string) *document.Node {
	root := markdown.Parse(text, s.mdOpts...)
	if root.ChildCount() == 0 {
		return document.EmptyPage()
	}
	return root
}

// Export renders the current document as markdown.
func (s *State) Export() string {
	return markdown.Serialize(s.root, s.mdOpts...)
}

// Snapshot returns the current root. Nodes are immutable, so the
// returned tree stays valid and unchanged after later edits.
func (s *State) Snapshot() *document.Node {
	return s.root
}

// Apply applies tx atomically. On error the document is left untouched.
func (s *State) Apply(tx *document.Transaction) error {
	if tx == nil {
		return errors.Wrap(document.ErrInvalidOperation, "transaction is nil")
	}

	root, err := tx.Apply(s.root)
	if err != nil {
		s.logger.Info("transaction rejected", zap.Int("operations", tx.Len()), zap.Error(err))
		return err
	}

	if err := checkRoot(root); err != nil {
		s.logger.Info("transaction rejected", zap.Int("operations", tx.Len()), zap.Error(err))
		return err
	}

	change := Change{
		ID:          ulid.New(),
		Transaction: tx,
		Before:      s.root,
		After:       root,
	}
	s.root = root
	s.logger.Debug("transaction applied", zap.String("id", change.ID), zap.Int("operations", tx.Len()))
	s.notify(change)
	return nil
}

func checkRoot(root *document.Node) error {
	if root == nil {
		return errors.Wrap(document.ErrInvalidOperation, "transaction removed the root")
	}
	if root.Type() != document.PageType {
		return errors.Wrapf(document.ErrInvalidOperation, "root must be %s, got %s", document.PageType, root.Type())
	}
	return nil
}

// Subscribe registers fn to be called after every committed change.
// The returned function removes the registration.
func (s *State) Subscribe(fn Observer) (cancel func()) {
	s.observerID++
	id := s.observerID
	s.observers = append(s.observers, subscription{id: id, fn: fn})

	return func() {
		for i, sub := range s.observers {
			if sub.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *State) notify(change Change) {
	observers := append([]subscription(nil), s.observers...)
	for _, sub := range observers {
		sub.fn(change)
	}
}
