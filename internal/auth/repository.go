package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sapliy/contractplus/pkg/bcryptutil"
)

var ErrUserNotFound = errors.New("user not found")

// Repository handles database operations for users.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetByEmail looks a user up by exact, case-sensitive email match.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT id, full_name, email, password_hash, created_at FROM users WHERE email = $1`
	var u User
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT id, full_name, email, password_hash, created_at FROM users WHERE id = $1`
	var u User
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// EnsureAdmin seeds the default admin account when it does not exist yet.
// Called on startup and after a system reset.
func (r *Repository) EnsureAdmin(ctx context.Context, fullName, email, password string) error {
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = $1`, email).Scan(&total); err != nil {
		return fmt.Errorf("failed to check admin user: %w", err)
	}
	if total > 0 {
		return nil
	}

	hash, err := bcryptutil.GenerateHash(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO users (full_name, email, password_hash) VALUES ($1, $2, $3)`,
		fullName, email, hash); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	return nil
}
