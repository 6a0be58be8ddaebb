package decision

import "errors"

// Predefined errors for the decision package.
var (
	// ErrNilConfig indicates the service was constructed without a
	// configuration view.
	ErrNilConfig = errors.New("nil project configuration")

	// ErrExperimentNotFound indicates an experiment key absent from the
	// configuration. Unlike every other anomaly, this one is surfaced to the
	// caller: it means the SDK consumer references an experiment that does
	// not exist.
	ErrExperimentNotFound = errors.New("experiment not found")

	// ErrVariationNotFound indicates a forced variation key that names no
	// variation of the experiment.
	ErrVariationNotFound = errors.New("variation not found")
)
