package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

type ValueKind int

const (
	InvalidKind ValueKind = iota
	IntKind
	StringKind
	BoolKind
)

func (k ValueKind) String() string {
	switch k {
	case IntKind:
		return "int"
	case StringKind:
		return "string"
	case BoolKind:
		return "bool"
	default:
		return "invalid"
	}
}

// Value is a node attribute value. It is one of int, string or bool.
// The zero Value is invalid and is rejected by schema validation.
type Value struct {
	kind ValueKind
	i    int64
	s    string
	b    bool
}

func Int(v int64) Value     { return Value{kind: IntKind, i: v} }
func String(v string) Value { return Value{kind: StringKind, s: v} }
func Bool(v bool) Value     { return Value{kind: BoolKind, b: v} }

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == IntKind
}

func (v Value) AsString() (string, bool) {
	return v.s, v.kind == StringKind
}

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == BoolKind
}

func (v Value) String() string {
	switch v.kind {
	case IntKind:
		return strconv.FormatInt(v.i, 10)
	case StringKind:
		return strconv.Quote(v.s)
	case BoolKind:
		return strconv.FormatBool(v.b)
	default:
		return "<invalid>"
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case IntKind:
		return json.Marshal(v.i)
	case StringKind:
		return json.Marshal(v.s)
	case BoolKind:
		return json.Marshal(v.b)
	default:
		return nil, errors.New("cannot marshal invalid value")
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return errors.WithStack(err)
	}

	switch x := raw.(type) {
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return errors.Wrapf(err, "attribute value %s is not an integer", x)
		}
		*v = Int(i)
	case string:
		*v = String(x)
	case bool:
		*v = Bool(x)
	default:
		return errors.Errorf("unsupported attribute value %s", fmt.Sprint(raw))
	}
	return nil
}

// Attributes maps attribute names to values.
type Attributes map[string]Value

func (a Attributes) Clone() Attributes {
	if len(a) == 0 {
		return nil
	}
	result := make(Attributes, len(a))
	for k, v := range a {
		result[k] = v
	}
	return result
}

func (a Attributes) Equal(other Attributes) bool {
	if len(a) != len(other) {
		return false
	}
	for k, v := range a {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
