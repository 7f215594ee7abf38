package contract

import (
	"context"
	"fmt"
	"time"
)

// RecentLimit is how many recently-touched contracts the dashboard shows.
const RecentLimit = 6

// Stats is the per-user dashboard snapshot. Every call recomputes it from
// live contract rows; nothing here is cached or precomputed.
type Stats struct {
	Total        int         `json:"total_contracts"`
	Active       int         `json:"active_contracts"`
	Expiring7d   int         `json:"expiring_7_days"`
	Overdue      int         `json:"overdue_contracts"`
	Recent       []*Contract `json:"recent_contracts"`
	GeneratedAt  time.Time   `json:"generated_at"`
}

// StatsStore is the slice of the contract repository the dashboard needs.
type StatsStore interface {
	CountByUser(ctx context.Context, userID int64) (int, error)
	CountActiveByUser(ctx context.Context, userID int64) (int, error)
	CountExpiringBetween(ctx context.Context, userID int64, from, to time.Time) (int, error)
	CountOverdue(ctx context.Context, userID int64, now time.Time) (int, error)
	RecentByUser(ctx context.Context, userID int64, limit int) ([]*Contract, error)
}

// BuildStats assembles the dashboard snapshot for a user at the given instant.
// The counts are independent queries; an overdue active contract stays out of
// the 7-day bucket only because its end date precedes the window, not through
// any exclusion rule.
func BuildStats(ctx context.Context, store StatsStore, userID int64, now time.Time) (*Stats, error) {
	total, err := store.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count contracts: %w", err)
	}
	active, err := store.CountActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count active contracts: %w", err)
	}
	expiring, err := store.CountExpiringBetween(ctx, userID, now, now.Add(7*24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to count expiring contracts: %w", err)
	}
	overdue, err := store.CountOverdue(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue contracts: %w", err)
	}
	recent, err := store.RecentByUser(ctx, userID, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent contracts: %w", err)
	}
	for _, c := range recent {
		c.Annotate(now)
	}

	return &Stats{
		Total:       total,
		Active:      active,
		Expiring7d:  expiring,
		Overdue:     overdue,
		Recent:      recent,
		GeneratedAt: now,
	}, nil
}
