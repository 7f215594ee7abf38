package notification

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository is the notification ledger. Inserts only; a dispatched
// notification is never updated afterwards.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create appends one dispatch record and fills in the generated id and
// created_at.
func (r *Repository) Create(ctx context.Context, n *Notification) error {
	query := `
		INSERT INTO notifications (contract_id, kind, subject, message, recipients, status, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		n.ContractID, n.Kind, n.Subject, n.Message, n.Recipients, n.Status, n.SentAt,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}
	return nil
}

// ListByUser returns every notification attached to the user's contracts,
// newest first, joined with the contract name.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*Notification, error) {
	query := `
		SELECT n.id, n.contract_id, c.name, n.kind, n.subject, n.message,
		       n.recipients, n.status, n.sent_at, n.created_at
		FROM notifications n
		JOIN contracts c ON n.contract_id = c.id
		WHERE c.user_id = $1
		ORDER BY n.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.ContractID, &n.ContractName, &n.Kind, &n.Subject,
			&n.Message, &n.Recipients, &n.Status, &n.SentAt, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}
