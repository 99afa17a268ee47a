package document

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// InlineAttributes is the formatting applied to a single delta run.
type InlineAttributes struct {
	Bold          bool   `json:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`
	Code          bool   `json:"code,omitempty"`
	Href          string `json:"href,omitempty"`
}

func (a InlineAttributes) IsZero() bool {
	return a == InlineAttributes{}
}

// Op is a text insertion run.
type Op struct {
	Text       string
	Attributes InlineAttributes
}

type jsonOp struct {
	Insert     string            `json:"insert"`
	Attributes *InlineAttributes `json:"attributes,omitempty"`
}

// Delta is the rich-text content of a node: an ordered list of runs.
// A Delta is normalized on construction: runs with empty text are dropped
// and neighbouring runs with equal attributes are merged.
type Delta struct {
	ops []Op
}

func NewDelta(ops ...Op) Delta {
	var d Delta
	for _, op := range ops {
		d.ops = appendOp(d.ops, op)
	}
	return d
}

// Text returns a delta with a single unformatted run.
func Text(s string) Delta {
	return NewDelta(Op{Text: s})
}

func appendOp(ops []Op, op Op) []Op {
	if op.Text == "" {
		return ops
	}
	if n := len(ops); n > 0 && ops[n-1].Attributes == op.Attributes {
		ops[n-1].Text += op.Text
		return ops
	}
	return append(ops, op)
}

// Ops returns a copy of the runs.
func (d Delta) Ops() []Op {
	if len(d.ops) == 0 {
		return nil
	}
	result := make([]Op, len(d.ops))
	copy(result, d.ops)
	return result
}

func (d Delta) Len() int { return len(d.ops) }

func (d Delta) IsEmpty() bool { return len(d.ops) == 0 }

// Concat returns a new delta with the runs of other appended.
func (d Delta) Concat(other Delta) Delta {
	ops := make([]Op, 0, len(d.ops)+len(other.ops))
	ops = append(ops, d.ops...)
	for _, op := range other.ops {
		ops = appendOp(ops, op)
	}
	return Delta{ops: ops}
}

// String returns the plain text of the delta.
func (d Delta) String() string {
	var b strings.Builder
	for _, op := range d.ops {
		_, _ = b.WriteString(op.Text)
	}
	return b.String()
}

func (d Delta) Equal(other Delta) bool {
	if len(d.ops) != len(other.ops) {
		return false
	}
	for i := range d.ops {
		if d.ops[i] != other.ops[i] {
			return false
		}
	}
	return true
}

func (d Delta) MarshalJSON() ([]byte, error) {
	result := make([]jsonOp, 0, len(d.ops))
	for _, op := range d.ops {
		item := jsonOp{Insert: op.Text}
		if !op.Attributes.IsZero() {
			attrs := op.Attributes
			item.Attributes = &attrs
		}
		result = append(result, item)
	}
	return json.Marshal(result)
}

func (d *Delta) UnmarshalJSON(data []byte) error {
	var raw []jsonOp
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "failed to unmarshal delta")
	}
	ops := make([]Op, 0, len(raw))
	for _, item := range raw {
		op := Op{Text: item.Insert}
		if item.Attributes != nil {
			op.Attributes = *item.Attributes
		}
		ops = append(ops, op)
	}
	*d = NewDelta(ops...)
	return nil
}
