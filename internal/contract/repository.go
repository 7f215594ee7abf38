package contract

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when a contract does not exist or is owned by a
// different user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("contract not found")

// Repository handles database operations for contracts. Every query is scoped
// by the owning user id; there is no unscoped read path.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const contractColumns = `id, name, description, start_date, end_date, status, created_at, updated_at, user_id`

func scanContract(row interface{ Scan(...any) error }) (*Contract, error) {
	var c Contract
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.StartDate, &c.EndDate,
		&c.Status, &c.CreatedAt, &c.UpdatedAt, &c.UserID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByUser returns all contracts owned by the user, most recently updated
// first.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*Contract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM contracts WHERE user_id = $1
		ORDER BY updated_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []*Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

// FindForUser retrieves a single contract scoped to its owner.
func (r *Repository) FindForUser(ctx context.Context, id, userID int64) (*Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1 AND user_id = $2`
	c, err := scanContract(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new contract for the user and returns the stored row.
func (r *Repository) Create(ctx context.Context, userID int64, req CreateRequest) (*Contract, error) {
	status := req.Status
	if status == "" {
		status = StatusActive
	}
	query := `
		INSERT INTO contracts (name, description, start_date, end_date, status, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + contractColumns
	c, err := scanContract(r.db.QueryRowContext(ctx, query,
		req.Name, req.Description, req.StartDate, req.EndDate, status, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to create contract: %w", err)
	}
	return c, nil
}

// Update applies a partial patch to a contract owned by the user. updated_at
// is always bumped, even when the patch is empty.
func (r *Repository) Update(ctx context.Context, id, userID int64, req UpdateRequest) (*Contract, error) {
	sets := []string{}
	args := []any{}
	add := func(column string, value *string) {
		if value != nil {
			args = append(args, *value)
			sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}
	add("name", req.Name)
	add("description", req.Description)
	add("start_date", req.StartDate)
	add("end_date", req.EndDate)
	add("status", req.Status)
	sets = append(sets, "updated_at = now()")

	args = append(args, id, userID)
	query := fmt.Sprintf(`
		UPDATE contracts SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING `+contractColumns,
		strings.Join(sets, ", "), len(args)-1, len(args))

	c, err := scanContract(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update contract: %w", err)
	}
	return c, nil
}

// Delete removes a contract and its notification history in one transaction.
// The schema also cascades, but the explicit delete keeps the invariant
// visible and independent of DDL.
func (r *Repository) Delete(ctx context.Context, id, userID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM notifications
		WHERE contract_id IN (SELECT id FROM contracts WHERE id = $1 AND user_id = $2)
	`, id, userID); err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM contracts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// The stats queries below are intentionally independent: overdue and
// expiring-within-7-days can in principle overlap, and only the date window
// keeps them apart. End dates are text, so the bounds are formatted in the
// fixed pattern the original writers used, which compares lexicographically.

func (r *Repository) CountByUser(ctx context.Context, userID int64) (int, error) {
	return r.countWhere(ctx, `SELECT COUNT(*) FROM contracts WHERE user_id = $1`, userID)
}

func (r *Repository) CountActiveByUser(ctx context.Context, userID int64) (int, error) {
	return r.countWhere(ctx,
		`SELECT COUNT(*) FROM contracts WHERE user_id = $1 AND status = $2`,
		userID, StatusActive)
}

// CountExpiringBetween counts active contracts whose end date falls within
// [from, to], both bounds inclusive.
func (r *Repository) CountExpiringBetween(ctx context.Context, userID int64, from, to time.Time) (int, error) {
	return r.countWhere(ctx, `
		SELECT COUNT(*) FROM contracts
		WHERE user_id = $1 AND status = $2 AND end_date BETWEEN $3 AND $4
	`, userID, StatusActive, from.UTC().Format(fallbackLayout), to.UTC().Format(fallbackLayout))
}

// CountOverdue counts active contracts whose end date is strictly before now.
func (r *Repository) CountOverdue(ctx context.Context, userID int64, now time.Time) (int, error) {
	return r.countWhere(ctx, `
		SELECT COUNT(*) FROM contracts
		WHERE user_id = $1 AND status = $2 AND end_date < $3
	`, userID, StatusActive, now.UTC().Format(fallbackLayout))
}

// RecentByUser returns the most recently updated contracts, ties broken by
// higher id first.
func (r *Repository) RecentByUser(ctx context.Context, userID int64, limit int) ([]*Contract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM contracts WHERE user_id = $1
		ORDER BY updated_at DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []*Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

func (r *Repository) countWhere(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
