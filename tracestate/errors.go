package tracestate

import "errors"

// Validation errors returned by Insert, Delete, and FromKeyValues.
var (
	// ErrInvalidKey indicates a list-member key fails the W3C grammar.
	ErrInvalidKey = errors.New("tracestate: invalid key")

	// ErrInvalidValue indicates a list-member value fails the W3C grammar.
	ErrInvalidValue = errors.New("tracestate: invalid value")
)
