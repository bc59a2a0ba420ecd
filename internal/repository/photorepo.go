package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"photoshare/internal/model"
)

// PhotoRepository provides access to photos and their embedded comments.
type PhotoRepository interface {
	// Create inserts a new photo record.
	Create(ctx context.Context, p *model.Photo) error
	// GetByID loads a photo by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Photo, error)
	// ListByOwner returns all photos of an account, oldest first.
	ListByOwner(ctx context.Context, accountID uuid.UUID) ([]model.Photo, error)
	// AppendComment atomically appends a comment to its photo, assigning Seq
	// and CreatedAt. Concurrent appends to the same photo must all survive.
	AppendComment(ctx context.Context, c *model.Comment) error
	// ListComments returns a photo's comments in append order.
	ListComments(ctx context.Context, photoID uuid.UUID) ([]model.Comment, error)
}
