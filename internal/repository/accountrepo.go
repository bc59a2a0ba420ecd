// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"photoshare/internal/model"
)

// AccountRepository provides access to registered accounts.
type AccountRepository interface {
	// Create inserts a new account. Returns errs.ErrAlreadyExists when the
	// login name is taken.
	Create(ctx context.Context, a *model.Account) error
	// GetByID loads an account by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	// GetByLoginName loads an account by its unique login name.
	GetByLoginName(ctx context.Context, loginName string) (*model.Account, error)
	// GetSummary loads the public projection of an account.
	GetSummary(ctx context.Context, id uuid.UUID) (*model.AccountSummary, error)
	// List returns the public projection of every account.
	List(ctx context.Context) ([]model.AccountSummary, error)
}
