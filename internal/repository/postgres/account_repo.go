package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"photoshare/internal/errs"
	"photoshare/internal/model"
)

// AccountRepo implements AccountRepository using PostgreSQL.
type AccountRepo struct{ db *DB }

// NewAccountRepo constructs an account repository.
func NewAccountRepo(db *DB) *AccountRepo { return &AccountRepo{db: db} }

// Create inserts a new account row.
func (r *AccountRepo) Create(ctx context.Context, a *model.Account) error {
	const q = `
INSERT INTO accounts (id, login_name, pwd_hash, salt, first_name, last_name, location, description, occupation)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Pool.Exec(ctx, q,
		a.ID, a.LoginName, a.PwdHash, a.Salt,
		a.FirstName, a.LastName, a.Location, a.Description, a.Occupation)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByID selects an account by ID.
func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	const q = `
SELECT id, login_name, pwd_hash, salt, first_name, last_name, location, description, occupation, created_at
FROM accounts WHERE id=$1`
	return r.scanAccount(r.db.Pool.QueryRow(ctx, q, id))
}

// GetByLoginName selects an account by login name (exact, case-sensitive).
func (r *AccountRepo) GetByLoginName(ctx context.Context, loginName string) (*model.Account, error) {
	const q = `
SELECT id, login_name, pwd_hash, salt, first_name, last_name, location, description, occupation, created_at
FROM accounts WHERE login_name=$1`
	return r.scanAccount(r.db.Pool.QueryRow(ctx, q, loginName))
}

func (r *AccountRepo) scanAccount(row pgx.Row) (*model.Account, error) {
	var a model.Account
	if err := row.Scan(&a.ID, &a.LoginName, &a.PwdHash, &a.Salt,
		&a.FirstName, &a.LastName, &a.Location, &a.Description, &a.Occupation, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetSummary selects the public projection of one account.
func (r *AccountRepo) GetSummary(ctx context.Context, id uuid.UUID) (*model.AccountSummary, error) {
	const q = `SELECT id, first_name, last_name FROM accounts WHERE id=$1`
	var s model.AccountSummary
	if err := r.db.Pool.QueryRow(ctx, q, id).Scan(&s.ID, &s.FirstName, &s.LastName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns every account's public projection ordered by creation.
func (r *AccountRepo) List(ctx context.Context) ([]model.AccountSummary, error) {
	const q = `SELECT id, first_name, last_name FROM accounts ORDER BY created_at ASC, id ASC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.AccountSummary{}
	for rows.Next() {
		var s model.AccountSummary
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
