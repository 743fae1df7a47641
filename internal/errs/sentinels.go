// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested task does not exist, belongs to
	// another user, or was soft-deleted. Callers cannot tell these apart.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates failed authentication: bad credentials or a
	// missing/invalid/expired token, uniformly regardless of cause.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrValidation indicates malformed input (e.g., blank title).
	ErrValidation = errors.New("validation failed")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")
)
