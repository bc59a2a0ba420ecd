package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"photoshare/internal/errs"
	"photoshare/internal/model"
)

// SessionRepo implements SessionRepository using PostgreSQL.
type SessionRepo struct{ db *DB }

// NewSessionRepo constructs a session repository.
func NewSessionRepo(db *DB) *SessionRepo { return &SessionRepo{db: db} }

// Create stores a session and opportunistically sweeps expired rows.
func (r *SessionRepo) Create(ctx context.Context, s *model.Session) error {
	const sweep = `DELETE FROM sessions WHERE expires_at <= now()`
	_, _ = r.db.Pool.Exec(ctx, sweep) // best-effort

	const q = `
INSERT INTO sessions (token, account_id, first_name, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Pool.Exec(ctx, q, s.Token, s.AccountID, s.FirstName, s.CreatedAt, s.ExpiresAt)
	return err
}

// Get resolves a token to a live (unexpired) session.
func (r *SessionRepo) Get(ctx context.Context, token string) (*model.Session, error) {
	const q = `
SELECT token, account_id, first_name, created_at, expires_at
FROM sessions
WHERE token=$1 AND expires_at > now()`
	var s model.Session
	err := r.db.Pool.QueryRow(ctx, q, token).Scan(&s.Token, &s.AccountID, &s.FirstName, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNoSession
		}
		return nil, err
	}
	return &s, nil
}

// Delete destroys a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	const q = `DELETE FROM sessions WHERE token=$1`
	tag, err := r.db.Pool.Exec(ctx, q, token)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNoSession
	}
	return nil
}
