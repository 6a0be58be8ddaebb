package userprofile

import "errors"

// Predefined errors for the userprofile package.
var (
	// ErrNotFound indicates no profile exists for the user. It is the only
	// Service error the Adapter treats as a normal outcome rather than a fault.
	ErrNotFound = errors.New("user profile not found")

	// ErrInvalidProfile indicates a profile with no user id.
	ErrInvalidProfile = errors.New("invalid user profile")

	// ErrMalformedRecord indicates a stored profile that could not be decoded.
	ErrMalformedRecord = errors.New("malformed user profile record")
)
