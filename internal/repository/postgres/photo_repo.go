package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"photoshare/internal/errs"
	"photoshare/internal/model"
)

// PhotoRepo implements PhotoRepository using PostgreSQL.
type PhotoRepo struct{ db *DB }

// NewPhotoRepo constructs a photo repository.
func NewPhotoRepo(db *DB) *PhotoRepo { return &PhotoRepo{db: db} }

// Create inserts a new photo row and reads back the assigned timestamp.
func (r *PhotoRepo) Create(ctx context.Context, p *model.Photo) error {
	const q = `
INSERT INTO photos (id, account_id, file_name)
VALUES ($1, $2, $3)
RETURNING created_at`
	return r.db.Pool.QueryRow(ctx, q, p.ID, p.AccountID, p.FileName).Scan(&p.CreatedAt)
}

// GetByID selects a photo by ID.
func (r *PhotoRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Photo, error) {
	const q = `SELECT id, account_id, file_name, created_at FROM photos WHERE id=$1`
	var p model.Photo
	if err := r.db.Pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.AccountID, &p.FileName, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByOwner returns all photos of an account ordered by creation time
// ascending. The id tiebreak keeps the order stable across identical stamps.
func (r *PhotoRepo) ListByOwner(ctx context.Context, accountID uuid.UUID) ([]model.Photo, error) {
	const q = `
SELECT id, account_id, file_name, created_at
FROM photos
WHERE account_id=$1
ORDER BY created_at ASC, id ASC`
	rows, err := r.db.Pool.Query(ctx, q, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Photo
	for rows.Next() {
		var p model.Photo
		if err := rows.Scan(&p.ID, &p.AccountID, &p.FileName, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// AppendComment inserts a comment row. The insert is a single statement, so
// concurrent appends to one photo serialize in the store without lost
// updates; seq fixes the resulting order for all readers.
func (r *PhotoRepo) AppendComment(ctx context.Context, c *model.Comment) error {
	const q = `
INSERT INTO comments (id, photo_id, account_id, body)
VALUES ($1, $2, $3, $4)
RETURNING seq, created_at`
	err := r.db.Pool.QueryRow(ctx, q, c.ID, c.PhotoID, c.AccountID, c.Body).Scan(&c.Seq, &c.CreatedAt)
	if isForeignKeyViolation(err) {
		return errs.ErrNotFound
	}
	return err
}

// ListComments returns a photo's comments in append order.
func (r *PhotoRepo) ListComments(ctx context.Context, photoID uuid.UUID) ([]model.Comment, error) {
	const q = `
SELECT id, photo_id, account_id, body, seq, created_at
FROM comments
WHERE photo_id=$1
ORDER BY seq ASC`
	rows, err := r.db.Pool.Query(ctx, q, photoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.PhotoID, &c.AccountID, &c.Body, &c.Seq, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
