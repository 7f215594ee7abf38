package contract

import (
	"context"
	"time"
)

// MockStatsStore is a Func-field test double for StatsStore.
type MockStatsStore struct {
	CountByUserFunc          func(ctx context.Context, userID int64) (int, error)
	CountActiveByUserFunc    func(ctx context.Context, userID int64) (int, error)
	CountExpiringBetweenFunc func(ctx context.Context, userID int64, from, to time.Time) (int, error)
	CountOverdueFunc         func(ctx context.Context, userID int64, now time.Time) (int, error)
	RecentByUserFunc         func(ctx context.Context, userID int64, limit int) ([]*Contract, error)
}

func (m *MockStatsStore) CountByUser(ctx context.Context, userID int64) (int, error) {
	return m.CountByUserFunc(ctx, userID)
}

func (m *MockStatsStore) CountActiveByUser(ctx context.Context, userID int64) (int, error) {
	return m.CountActiveByUserFunc(ctx, userID)
}

func (m *MockStatsStore) CountExpiringBetween(ctx context.Context, userID int64, from, to time.Time) (int, error) {
	return m.CountExpiringBetweenFunc(ctx, userID, from, to)
}

func (m *MockStatsStore) CountOverdue(ctx context.Context, userID int64, now time.Time) (int, error) {
	return m.CountOverdueFunc(ctx, userID, now)
}

func (m *MockStatsStore) RecentByUser(ctx context.Context, userID int64, limit int) ([]*Contract, error) {
	return m.RecentByUserFunc(ctx, userID, limit)
}
