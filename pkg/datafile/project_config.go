package datafile

import (
	"errors"
	"fmt"
)

// ProjectConfig is the indexed, read-only view over a parsed datafile.
// It is never mutated after construction and is safe to share across
// goroutines.
type ProjectConfig struct {
	version  string
	revision string
	project  string
	account  string

	experimentsByKey map[string]Experiment
	experimentsByID  map[string]Experiment
	groupsByID       map[string]Group
	audiencesByID    map[string]Audience
}

func newProjectConfig(doc document) (*ProjectConfig, error) {
	cfg := &ProjectConfig{
		version:          doc.Version,
		revision:         doc.Revision,
		project:          doc.ProjectID,
		account:          doc.AccountID,
		experimentsByKey: make(map[string]Experiment),
		experimentsByID:  make(map[string]Experiment),
		groupsByID:       make(map[string]Group, len(doc.Groups)),
		audiencesByID:    make(map[string]Audience, len(doc.Audiences)),
	}

	for _, exp := range doc.Experiments {
		if err := cfg.indexExperiment(exp); err != nil {
			return nil, err
		}
	}

	for _, group := range doc.Groups {
		switch group.Policy {
		case PolicyRandom, PolicyOverlapping:
		default:
			return nil, errors.Join(ErrUnknownGroupPolicy, fmt.Errorf("group %s: policy %q", group.ID, group.Policy))
		}
		if err := validateAllocation("group "+group.ID, group.TrafficAllocation); err != nil {
			return nil, err
		}
		// Group members live in the same flat namespace as top-level
		// experiments, stamped with their group for exclusion checks.
		for _, exp := range group.Experiments {
			exp.GroupID = group.ID
			exp.GroupPolicy = group.Policy
			if err := cfg.indexExperiment(exp); err != nil {
				return nil, err
			}
		}
		cfg.groupsByID[group.ID] = group
	}

	for _, aud := range doc.Audiences {
		cfg.audiencesByID[aud.ID] = aud
	}

	return cfg, nil
}

func (c *ProjectConfig) indexExperiment(exp Experiment) error {
	if exp.ID == "" || exp.Key == "" {
		return errors.Join(ErrInvalidDatafile, fmt.Errorf("experiment %q/%q missing id or key", exp.ID, exp.Key))
	}
	if _, exists := c.experimentsByKey[exp.Key]; exists {
		return errors.Join(ErrDuplicateExperimentKey, errors.New(exp.Key))
	}
	if err := validateAllocation("experiment "+exp.Key, exp.TrafficAllocation); err != nil {
		return err
	}
	c.experimentsByKey[exp.Key] = exp
	c.experimentsByID[exp.ID] = exp
	return nil
}

// Version returns the datafile schema version.
func (c *ProjectConfig) Version() string { return c.version }

// Revision returns the datafile revision, useful for diagnostics.
func (c *ProjectConfig) Revision() string { return c.revision }

// ProjectID returns the project identifier.
func (c *ProjectConfig) ProjectID() string { return c.project }

// AccountID returns the account identifier.
func (c *ProjectConfig) AccountID() string { return c.account }

// ExperimentByKey resolves an experiment by its human-readable key.
func (c *ProjectConfig) ExperimentByKey(key string) (Experiment, bool) {
	exp, ok := c.experimentsByKey[key]
	return exp, ok
}

// ExperimentByID resolves an experiment by id.
func (c *ProjectConfig) ExperimentByID(id string) (Experiment, bool) {
	exp, ok := c.experimentsByID[id]
	return exp, ok
}

// GroupByID resolves a mutually exclusive group by id.
func (c *ProjectConfig) GroupByID(id string) (Group, bool) {
	group, ok := c.groupsByID[id]
	return group, ok
}

// AudienceByID resolves an audience by id.
func (c *ProjectConfig) AudienceByID(id string) (Audience, bool) {
	aud, ok := c.audiencesByID[id]
	return aud, ok
}
