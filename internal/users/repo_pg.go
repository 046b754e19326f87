package users

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new user.
func (r *PGRepo) Create(ctx context.Context, u *User) error {
	const query = `
INSERT INTO users (id, email, password_hash, display_name, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	var displayName sql.NullString
	if u.DisplayName != "" {
		displayName = sql.NullString{String: u.DisplayName, Valid: true}
	}

	_, err := r.DB.ExecContext(ctx, query, u.ID, u.Email, u.PasswordHash, displayName, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// GetByEmail fetches a user by email.
func (r *PGRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
SELECT id, email, password_hash, display_name, created_at, updated_at
FROM users
WHERE email = $1
LIMIT 1`
	return r.getOne(ctx, query, email)
}

// GetByID fetches a user by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (*User, error) {
	const query = `
SELECT id, email, password_hash, display_name, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1`
	return r.getOne(ctx, query, id)
}

// UpdateDisplayName sets the user's display name and returns the updated row.
func (r *PGRepo) UpdateDisplayName(ctx context.Context, id, displayName string, now time.Time) (*User, error) {
	const query = `
UPDATE users
SET display_name = $1, updated_at = $2
WHERE id = $3
RETURNING id, email, password_hash, display_name, created_at, updated_at`

	u, err := scanUser(r.DB.QueryRowContext(ctx, query, displayName, now, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *PGRepo) getOne(ctx context.Context, query string, arg any) (*User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var displayName sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &displayName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if displayName.Valid {
		u.DisplayName = displayName.String
	}
	return &u, nil
}

var _ Repo = (*PGRepo)(nil)
