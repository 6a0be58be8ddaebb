package decision

import (
	"errors"
	"fmt"
)

// SetForcedVariation pins a user to a variation of an experiment, outranking
// the datafile whitelist, sticky decisions, audiences, and bucketing. An
// empty variation key clears the pin. The table is owned by this Service
// instance; it does not survive it.
func (s *Service) SetForcedVariation(experimentKey, userID, variationKey string) error {
	exp, ok := s.config.ExperimentByKey(experimentKey)
	if !ok {
		return errors.Join(ErrExperimentNotFound, fmt.Errorf("key %q", experimentKey))
	}

	if variationKey == "" {
		s.mu.Lock()
		delete(s.forced, forcedKey{experimentID: exp.ID, userID: userID})
		s.mu.Unlock()
		return nil
	}

	if _, ok := exp.VariationByKey(variationKey); !ok {
		return errors.Join(ErrVariationNotFound,
			fmt.Errorf("variation %q of experiment %q", variationKey, experimentKey))
	}

	s.mu.Lock()
	s.forced[forcedKey{experimentID: exp.ID, userID: userID}] = variationKey
	s.mu.Unlock()
	return nil
}

// GetForcedVariation returns the pinned variation key for the pair, or ""
// when none is set. The datafile's own whitelist is not consulted.
func (s *Service) GetForcedVariation(experimentKey, userID string) (string, error) {
	exp, ok := s.config.ExperimentByKey(experimentKey)
	if !ok {
		return "", errors.Join(ErrExperimentNotFound, fmt.Errorf("key %q", experimentKey))
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.forced[forcedKey{experimentID: exp.ID, userID: userID}], nil
}

// RemoveForcedVariation clears a pin. Clearing an absent pin is not an error.
func (s *Service) RemoveForcedVariation(experimentKey, userID string) error {
	return s.SetForcedVariation(experimentKey, userID, "")
}

func (s *Service) forcedVariationKey(experimentID, userID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.forced[forcedKey{experimentID: experimentID, userID: userID}]
	return key, ok
}
