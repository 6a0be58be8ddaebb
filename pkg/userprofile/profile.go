package userprofile

import (
	"context"
	"maps"
)

// Decision is the persisted outcome for one experiment.
type Decision struct {
	VariationID string `json:"variation_id" bson:"variation_id"`
}

// Profile is a user's saved decisions, keyed by experiment id. Entries for
// different experiments are merged on save, never replaced wholesale: a new
// decision for one experiment must not drop what was stored for others.
type Profile struct {
	UserID              string              `json:"user_id" bson:"_id"`
	ExperimentBucketMap map[string]Decision `json:"experiment_bucket_map" bson:"experiment_bucket_map"`
}

// New creates an empty profile for the user.
func New(userID string) *Profile {
	return &Profile{
		UserID:              userID,
		ExperimentBucketMap: make(map[string]Decision),
	}
}

// Variation returns the stored variation id for an experiment, if any.
func (p *Profile) Variation(experimentID string) (string, bool) {
	d, ok := p.ExperimentBucketMap[experimentID]
	return d.VariationID, ok
}

// SetVariation records a decision for an experiment, overwriting any
// previous entry for that experiment only.
func (p *Profile) SetVariation(experimentID, variationID string) {
	if p.ExperimentBucketMap == nil {
		p.ExperimentBucketMap = make(map[string]Decision)
	}
	p.ExperimentBucketMap[experimentID] = Decision{VariationID: variationID}
}

// RemoveVariation discards a stored entry, used when the stored variation no
// longer exists in the current configuration.
func (p *Profile) RemoveVariation(experimentID string) {
	delete(p.ExperimentBucketMap, experimentID)
}

// Clone returns a deep copy so callers can mutate freely.
func (p *Profile) Clone() *Profile {
	clone := New(p.UserID)
	maps.Copy(clone.ExperimentBucketMap, p.ExperimentBucketMap)
	return clone
}

// Service is the persistence contract. Lookup returns ErrNotFound when no
// profile exists for the user; any other error is a fault the Adapter
// absorbs. Implementations must tolerate concurrent calls.
type Service interface {
	Lookup(ctx context.Context, userID string) (*Profile, error)
	Save(ctx context.Context, profile *Profile) error
}
