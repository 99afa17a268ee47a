package document

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

type NodeType string

const (
	PageType         NodeType = "page"
	ParagraphType    NodeType = "paragraph"
	HeadingType      NodeType = "heading"
	BulletedListType NodeType = "bulleted_list"
	NumberedListType NodeType = "numbered_list"
	TodoListType     NodeType = "todo_list"
	QuoteType        NodeType = "quote"
	CodeType         NodeType = "code"
	DividerType      NodeType = "divider"
)

const (
	LevelKey    = "level"
	NumberKey   = "number"
	CheckedKey  = "checked"
	LanguageKey = "language"
)

const (
	MinHeadingLevel = 1
	MaxHeadingLevel = 6
)

// AttributeSpec describes a single attribute allowed on a node type.
type AttributeSpec struct {
	Kind     ValueKind
	Required bool
	// Check, if set, validates the value after its kind was verified.
	Check func(Value) error
}

// Schema describes a node type: whether it carries a delta and
// which attributes it accepts.
type Schema struct {
	Type       NodeType
	HasDelta   bool
	Attributes map[string]AttributeSpec
}

func (s *Schema) validate(attrs Attributes) error {
	var err error

	for _, key := range sortedKeys(s.Attributes) {
		spec := s.Attributes[key]
		value, ok := attrs[key]
		if !ok {
			if spec.Required {
				err = multierr.Append(err, errors.Errorf("%s: missing required attribute %q", s.Type, key))
			}
			continue
		}
		if value.Kind() != spec.Kind {
			err = multierr.Append(err, errors.Errorf("%s: attribute %q must be %s, got %s", s.Type, key, spec.Kind, value.Kind()))
			continue
		}
		if spec.Check != nil {
			if cerr := spec.Check(value); cerr != nil {
				err = multierr.Append(err, errors.Wrapf(cerr, "%s: attribute %q", s.Type, key))
			}
		}
	}

	for _, key := range sortedKeys(attrs) {
		if _, ok := s.Attributes[key]; !ok {
			err = multierr.Append(err, errors.Errorf("%s: unknown attribute %q", s.Type, key))
		}
	}

	if err != nil {
		return &attributesError{err: err}
	}
	return nil
}

// attributesError keeps every validation problem while matching
// ErrInvalidAttributes with errors.Is.
type attributesError struct {
	err error
}

func (e *attributesError) Error() string {
	return ErrInvalidAttributes.Error() + ": " + e.err.Error()
}

func (e *attributesError) Is(target error) bool {
	return target == ErrInvalidAttributes
}

func (e *attributesError) Unwrap() error {
	return e.err
}

func intRange(min, max int64) func(Value) error {
	return func(v Value) error {
		i, _ := v.AsInt()
		if i < min || i > max {
			return errors.Errorf("value %d out of range [%d, %d]", i, min, max)
		}
		return nil
	}
}

func nonNegative(v Value) error {
	i, _ := v.AsInt()
	if i < 0 {
		return errors.Errorf("value %d must not be negative", i)
	}
	return nil
}

var registry = struct {
	sync.RWMutex
	schemas map[NodeType]*Schema
}{
	schemas: map[NodeType]*Schema{
		PageType:      {Type: PageType},
		ParagraphType: {Type: ParagraphType, HasDelta: true},
		HeadingType: {
			Type:     HeadingType,
			HasDelta: true,
			Attributes: map[string]AttributeSpec{
				LevelKey: {Kind: IntKind, Required: true, Check: intRange(MinHeadingLevel, MaxHeadingLevel)},
			},
		},
		BulletedListType: {Type: BulletedListType, HasDelta: true},
		NumberedListType: {
			Type:     NumberedListType,
			HasDelta: true,
			Attributes: map[string]AttributeSpec{
				NumberKey: {Kind: IntKind, Required: true, Check: nonNegative},
			},
		},
		TodoListType: {
			Type:     TodoListType,
			HasDelta: true,
			Attributes: map[string]AttributeSpec{
				CheckedKey: {Kind: BoolKind, Required: true},
			},
		},
		QuoteType: {Type: QuoteType, HasDelta: true},
		CodeType: {
			Type:     CodeType,
			HasDelta: true,
			Attributes: map[string]AttributeSpec{
				LanguageKey: {Kind: StringKind},
			},
		},
		DividerType: {Type: DividerType},
	},
}

// RegisterSchema adds a new node type. Built-in types cannot be replaced.
func RegisterSchema(s Schema) error {
	if s.Type == "" {
		return errors.New("schema type is empty")
	}

	registry.Lock()
	defer registry.Unlock()

	if _, ok := registry.schemas[s.Type]; ok {
		return errors.Errorf("schema %q already registered", s.Type)
	}

	attrs := make(map[string]AttributeSpec, len(s.Attributes))
	for k, v := range s.Attributes {
		attrs[k] = v
	}
	s.Attributes = attrs
	registry.schemas[s.Type] = &s
	return nil
}

// LookupSchema returns a copy of the schema registered for t.
func LookupSchema(t NodeType) (Schema, bool) {
	registry.RLock()
	defer registry.RUnlock()
	s, ok := registry.schemas[t]
	if !ok {
		return Schema{}, false
	}
	result := *s
	if s.Attributes != nil {
		result.Attributes = make(map[string]AttributeSpec, len(s.Attributes))
		for k, v := range s.Attributes {
			result.Attributes[k] = v
		}
	}
	return result, true
}

func lookupSchema(t NodeType) (*Schema, error) {
	registry.RLock()
	defer registry.RUnlock()
	s, ok := registry.schemas[t]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownType, "%q", t)
	}
	return s, nil
}

// validateSubtree checks n and its descendants against the registry.
// Pages are only accepted at the top when root is set.
func validateSubtree(n *Node, root bool) error {
	if n == nil {
		return errors.Wrap(ErrInvalidOperation, "node is nil")
	}
	if n.typ == PageType && !root {
		return errors.Wrapf(ErrInvalidOperation, "%s is only allowed as the root", PageType)
	}

	schema, err := lookupSchema(n.typ)
	if err != nil {
		return err
	}
	if err := schema.validate(n.attrs); err != nil {
		return err
	}
	if n.hasDelta != schema.HasDelta || (!schema.HasDelta && !n.delta.IsEmpty()) {
		return errors.Wrapf(ErrInvalidAttributes, "%s: delta does not match the schema", n.typ)
	}

	for _, child := range n.children {
		if err := validateSubtree(child, false); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
