package audience

import "errors"

// Predefined errors for the audience package.
var (
	// ErrInvalidCondition indicates a condition tree that could not be parsed.
	ErrInvalidCondition = errors.New("invalid audience condition")

	// ErrUnsupportedOperator indicates a combinator other than and/or/not.
	ErrUnsupportedOperator = errors.New("unsupported condition operator")
)
