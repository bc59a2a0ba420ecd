package repository

import (
	"context"

	"photoshare/internal/model"
)

// SessionRepository is the durable token-to-principal mapping. Lookups are
// read-only and safe under concurrent use.
type SessionRepository interface {
	// Create stores a new session.
	Create(ctx context.Context, s *model.Session) error
	// Get resolves a token to a live session. Returns errs.ErrNoSession when
	// the token is unknown or expired.
	Get(ctx context.Context, token string) (*model.Session, error)
	// Delete destroys a session. Returns errs.ErrNoSession when absent.
	Delete(ctx context.Context, token string) error
}
