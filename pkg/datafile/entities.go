package datafile

import (
	"encoding/json"
	"errors"

	"github.com/dmitrymomot/splitkit/pkg/audience"
)

// MaxTrafficValue is the exclusive upper bound of the bucketing space.
// Allocation endpoints are cumulative permillages of it: an endpoint of 5000
// covers the first half of the space.
const MaxTrafficValue = 10000

// Status is the lifecycle state of an experiment. Only StatusRunning admits
// traffic; every other state short-circuits decisions to no variation.
type Status string

const (
	StatusRunning    Status = "Running"
	StatusPaused     Status = "Paused"
	StatusNotStarted Status = "Not started"
	StatusLaunched   Status = "Launched"
	StatusArchived   Status = "Archived"
)

// Group policies. Under PolicyRandom a user lands in at most one member
// experiment, chosen by the group's own traffic allocation.
const (
	PolicyRandom      = "random"
	PolicyOverlapping = "overlapping"
)

// TrafficAllocation is one entry of a cumulative allocation table. EntityID
// resolves to a variation id on experiments and to an experiment id on
// groups.
type TrafficAllocation struct {
	EntityID   string `json:"entityId"`
	EndOfRange int    `json:"endOfRange"`
}

// Variation is one arm of an experiment.
type Variation struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

// Experiment as declared in the datafile. GroupID and GroupPolicy are
// stamped during indexing for members of a group; both are empty otherwise.
type Experiment struct {
	ID                string              `json:"id"`
	Key               string              `json:"key"`
	Status            Status              `json:"status"`
	AudienceIDs       []string            `json:"audienceIds"`
	TrafficAllocation []TrafficAllocation `json:"trafficAllocation"`
	Variations        []Variation         `json:"variations"`
	ForcedVariations  map[string]string   `json:"forcedVariations"`
	GroupID           string              `json:"-"`
	GroupPolicy       string              `json:"-"`
}

// IsRunning reports whether the experiment admits traffic.
func (e Experiment) IsRunning() bool {
	return e.Status == StatusRunning
}

// Variation resolves a variation by id. Allocation entries may reference ids
// that no longer exist, so callers must check ok.
func (e Experiment) Variation(id string) (Variation, bool) {
	for _, v := range e.Variations {
		if v.ID == id {
			return v, true
		}
	}
	return Variation{}, false
}

// VariationByKey resolves a variation by key.
func (e Experiment) VariationByKey(key string) (Variation, bool) {
	for _, v := range e.Variations {
		if v.Key == key {
			return v, true
		}
	}
	return Variation{}, false
}

// WhitelistedKey returns the datafile-declared forced variation key for the
// user, if any. The key is a literal string and is not guaranteed to name an
// existing variation.
func (e Experiment) WhitelistedKey(userID string) (string, bool) {
	key, ok := e.ForcedVariations[userID]
	return key, ok
}

// Group is a set of experiments bucketed against a shared allocation.
type Group struct {
	ID                string              `json:"id"`
	Policy            string              `json:"policy"`
	TrafficAllocation []TrafficAllocation `json:"trafficAllocation"`
	Experiments       []Experiment        `json:"experiments"`
}

// Audience is a named condition tree gating experiment entry.
type Audience struct {
	ID         string
	Name       string
	Conditions audience.Condition
}

// UnmarshalJSON accepts conditions both embedded as JSON and in the
// datafile's string-encoded form (a JSON document inside a JSON string).
func (a *Audience) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         string          `json:"id"`
		Name       string          `json:"name"`
		Conditions json.RawMessage `json:"conditions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.ID = raw.ID
	a.Name = raw.Name

	cond := raw.Conditions
	if len(cond) == 0 || string(cond) == "null" {
		return errors.Join(ErrInvalidDatafile, errors.New("audience "+raw.ID+" has no conditions"))
	}
	if cond[0] == '"' {
		var inner string
		if err := json.Unmarshal(cond, &inner); err != nil {
			return errors.Join(ErrInvalidDatafile, err)
		}
		cond = []byte(inner)
	}
	if err := json.Unmarshal(cond, &a.Conditions); err != nil {
		return errors.Join(ErrInvalidDatafile, err)
	}
	return nil
}
