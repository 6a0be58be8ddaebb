package datafile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// document is the wire shape of a datafile.
type document struct {
	Version     string       `json:"version"`
	Revision    string       `json:"revision"`
	ProjectID   string       `json:"projectId"`
	AccountID   string       `json:"accountId"`
	Experiments []Experiment `json:"experiments"`
	Groups      []Group      `json:"groups"`
	Audiences   []Audience   `json:"audiences"`
}

// Parse decodes a JSON datafile, validates it, and builds the indexed
// read-only view the decision engine consumes.
func Parse(raw []byte) (*ProjectConfig, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyDatafile
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Join(ErrInvalidDatafile, err)
	}

	return newProjectConfig(doc)
}

// ParseYAML decodes a YAML datafile. The payload is normalized through JSON
// so that both formats share one validation and indexing path.
func ParseYAML(raw []byte) (*ProjectConfig, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyDatafile
	}

	var tree any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, errors.Join(ErrInvalidDatafile, err)
	}
	normalized, err := json.Marshal(tree)
	if err != nil {
		return nil, errors.Join(ErrInvalidDatafile, err)
	}

	return Parse(normalized)
}

func validateAllocation(owner string, alloc []TrafficAllocation) error {
	prev := 0
	for _, entry := range alloc {
		if entry.EndOfRange < 0 || entry.EndOfRange > MaxTrafficValue {
			return errors.Join(ErrInvalidTrafficAllocation,
				fmt.Errorf("%s: endpoint %d outside [0, %d]", owner, entry.EndOfRange, MaxTrafficValue))
		}
		if entry.EndOfRange < prev {
			return errors.Join(ErrInvalidTrafficAllocation,
				fmt.Errorf("%s: endpoint %d decreases after %d", owner, entry.EndOfRange, prev))
		}
		prev = entry.EndOfRange
	}
	return nil
}
