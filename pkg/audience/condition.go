package audience

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Operator is a logical combinator over child conditions.
type Operator string

const (
	OperatorAnd Operator = "and"
	OperatorOr  Operator = "or"
	OperatorNot Operator = "not"
)

// Condition is one node of a condition tree. A node is either a combinator
// (Op is set, Operands holds the children) or a leaf (Op is empty, Name and
// Value hold the attribute check). The two forms are mutually exclusive.
type Condition struct {
	Op       Operator    `json:"op,omitempty"`
	Operands []Condition `json:"operands,omitempty"`
	Name     string      `json:"name,omitempty"`
	Value    any         `json:"value,omitempty"`
}

// IsLeaf reports whether the node is an attribute check rather than a combinator.
func (c Condition) IsLeaf() bool {
	return c.Op == ""
}

// UnmarshalJSON parses the datafile condition shape: a leaf object
// {"name": ..., "value": ...} or a combinator array ["and"|"or"|"not",
// operand, ...]. An array whose first element is not an operator string is
// treated as an implicit "or" over its elements.
func (c *Condition) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidCondition
	}

	switch data[0] {
	case '[':
		var parts []json.RawMessage
		if err := json.Unmarshal(data, &parts); err != nil {
			return errors.Join(ErrInvalidCondition, err)
		}
		if len(parts) == 0 {
			return errors.Join(ErrInvalidCondition, errors.New("empty condition list"))
		}

		op := OperatorOr
		if len(bytes.TrimSpace(parts[0])) > 0 && bytes.TrimSpace(parts[0])[0] == '"' {
			var s string
			if err := json.Unmarshal(parts[0], &s); err != nil {
				return errors.Join(ErrInvalidCondition, err)
			}
			switch Operator(s) {
			case OperatorAnd, OperatorOr, OperatorNot:
				op = Operator(s)
				parts = parts[1:]
			default:
				return errors.Join(ErrUnsupportedOperator, fmt.Errorf("operator %q", s))
			}
		}
		if len(parts) == 0 {
			return errors.Join(ErrInvalidCondition, errors.New("operator without operands"))
		}

		operands := make([]Condition, len(parts))
		for i, p := range parts {
			if err := json.Unmarshal(p, &operands[i]); err != nil {
				return err
			}
		}
		*c = Condition{Op: op, Operands: operands}
		return nil

	case '{':
		var leaf struct {
			Name  string `json:"name"`
			Type  string `json:"type"`
			Value any    `json:"value"`
		}
		if err := json.Unmarshal(data, &leaf); err != nil {
			return errors.Join(ErrInvalidCondition, err)
		}
		if leaf.Name == "" {
			return errors.Join(ErrInvalidCondition, errors.New("leaf condition without attribute name"))
		}
		*c = Condition{Name: leaf.Name, Value: leaf.Value}
		return nil

	default:
		return errors.Join(ErrInvalidCondition, fmt.Errorf("unexpected token %q", data[0]))
	}
}
