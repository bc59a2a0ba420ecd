// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a malformed or missing required field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates a missing or invalid session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoAccount indicates login with an unknown login name. Kept distinct
	// from ErrBadCredentials so the client may offer registration.
	ErrNoAccount = errors.New("no such account")

	// ErrBadCredentials indicates a password mismatch for an existing account.
	ErrBadCredentials = errors.New("bad credentials")

	// ErrAlreadyExists indicates a unique constraint violation (login name taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrNoSession indicates logout without a live session.
	ErrNoSession = errors.New("no session")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrStorage indicates a file or document persistence failure.
	ErrStorage = errors.New("storage failure")
)
