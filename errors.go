package splitkit

import "errors"

// Predefined errors for the splitkit package.
var (
	// ErrDatafileNotConfigured indicates NewFromEnv was called without
	// SPLITKIT_DATAFILE set.
	ErrDatafileNotConfigured = errors.New("datafile path not configured, set SPLITKIT_DATAFILE")

	// ErrInvalidLogLevel indicates an unrecognized SPLITKIT_LOG_LEVEL value.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidLogFormat indicates an unrecognized SPLITKIT_LOG_FORMAT value.
	ErrInvalidLogFormat = errors.New("invalid log format")
)
