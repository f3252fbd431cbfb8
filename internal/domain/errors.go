package domain

import "errors"

var (
	// ErrNotFound covers both absence and tenant mismatch: the two must
	// not be distinguishable, so cross-tenant existence never leaks.
	ErrNotFound = errors.New("not found")

	// ErrRetroBlocked is returned when a write targets a day whose date
	// is not today and no override was requested. Callers surface it as
	// its own condition (HTTP 409) so the UI can offer the override path.
	ErrRetroBlocked = errors.New("retroactive edit blocked")

	// ErrValidation marks a malformed payload, rejected before any
	// guard or store call.
	ErrValidation = errors.New("invalid payload")
)
