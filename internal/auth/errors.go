package auth

import "errors"

var (
	// ErrMissingAPIKey is returned when no Authorization header is present.
	ErrMissingAPIKey = errors.New("missing Authorization header")

	// ErrInvalidAPIKey is returned when the presented key is not recognized.
	ErrInvalidAPIKey = errors.New("invalid API key")
)
