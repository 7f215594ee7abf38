package notification

import (
	"context"

	"github.com/sapliy/contractplus/internal/contract"
)

// MockContractFinder is a Func-field test double for ContractFinder.
type MockContractFinder struct {
	FindForUserFunc func(ctx context.Context, id, userID int64) (*contract.Contract, error)
}

func (m *MockContractFinder) FindForUser(ctx context.Context, id, userID int64) (*contract.Contract, error) {
	return m.FindForUserFunc(ctx, id, userID)
}

// MockLedger is a Func-field test double for Ledger. Created rows are also
// appended to Rows for inspection.
type MockLedger struct {
	CreateFunc     func(ctx context.Context, n *Notification) error
	ListByUserFunc func(ctx context.Context, userID int64) ([]*Notification, error)
	Rows           []*Notification
}

func (m *MockLedger) Create(ctx context.Context, n *Notification) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, n); err != nil {
			return err
		}
	}
	n.ID = int64(len(m.Rows) + 1)
	m.Rows = append(m.Rows, n)
	return nil
}

func (m *MockLedger) ListByUser(ctx context.Context, userID int64) ([]*Notification, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return m.Rows, nil
}

// MockSender records send attempts and fails when Err is set.
type MockSender struct {
	Err   error
	Calls [][]string
}

func (m *MockSender) Send(ctx context.Context, to []string, subject, htmlBody, textBody string) error {
	m.Calls = append(m.Calls, to)
	return m.Err
}
