package datafile

import "errors"

// Predefined errors for the datafile package.
var (
	// ErrEmptyDatafile indicates an empty or whitespace-only payload.
	ErrEmptyDatafile = errors.New("empty datafile")

	// ErrInvalidDatafile indicates a payload that could not be decoded.
	ErrInvalidDatafile = errors.New("invalid datafile")

	// ErrInvalidTrafficAllocation indicates endpoints outside [0, 10000]
	// or a non-monotonic sequence.
	ErrInvalidTrafficAllocation = errors.New("invalid traffic allocation")

	// ErrDuplicateExperimentKey indicates two experiments sharing a key.
	ErrDuplicateExperimentKey = errors.New("duplicate experiment key")

	// ErrUnknownGroupPolicy indicates a group policy other than "random"
	// or "overlapping".
	ErrUnknownGroupPolicy = errors.New("unknown group policy")
)
