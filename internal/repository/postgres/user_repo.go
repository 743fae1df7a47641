package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/and161185/taskkeep/internal/errs"
	"github.com/and161185/taskkeep/internal/model"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user row.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (id, email, pwd_hash)
VALUES ($1, $2, $3)`
	_, err := r.db.Pool.Exec(ctx, q, u.ID, u.Email, u.PwdHash)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByEmail selects a user by email (case-sensitive, as stored).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
SELECT id, email, pwd_hash, created_at
FROM users WHERE email=$1`
	row := r.db.Pool.QueryRow(ctx, q, email)
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.PwdHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		// Anything else is a store failure, not an absent user.
		return nil, err
	}
	return &u, nil
}
