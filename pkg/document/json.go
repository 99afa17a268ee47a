package document

import (
	"encoding/json"

	"github.com/pkg/errors"
)

type jsonNode struct {
	Type       NodeType   `json:"type"`
	Attributes Attributes `json:"attributes,omitempty"`
	Delta      *Delta     `json:"delta,omitempty"`
	Children   []*Node    `json:"children,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	raw := jsonNode{
		Type:       n.typ,
		Attributes: n.attrs,
		Children:   n.children,
	}
	if n.hasDelta {
		d := n.delta
		raw.Delta = &d
	}
	return json.Marshal(raw)
}

// UnmarshalJSON decodes a node and validates it like New does.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw jsonNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "failed to unmarshal node")
	}

	var delta Delta
	if raw.Delta != nil {
		delta = *raw.Delta
	}

	result, err := New(raw.Type, raw.Attributes, delta, raw.Children...)
	if err != nil {
		return err
	}
	*n = *result
	return nil
}
