package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapliy/contractplus/internal/contract"
)

func newTestService(finder *MockContractFinder, ledger *MockLedger, sender *MockSender) *Service {
	if finder == nil {
		finder = &MockContractFinder{
			FindForUserFunc: func(ctx context.Context, id, userID int64) (*contract.Contract, error) {
				return testContract(), nil
			},
		}
	}
	return NewService(finder, ledger, sender)
}

func TestDispatchSuccess(t *testing.T) {
	ledger := &MockLedger{}
	sender := &MockSender{}
	svc := newTestService(nil, ledger, sender)

	sent, err := svc.Dispatch(context.Background(), 1, 42, DispatchRequest{
		Kind:       KindWeeklyReminder,
		Recipients: RecipientList{"ops@example.com", "legal@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	require.Len(t, sender.Calls, 1)
	assert.Equal(t, []string{"ops@example.com", "legal@example.com"}, sender.Calls[0])

	require.Len(t, ledger.Rows, 1)
	row := ledger.Rows[0]
	assert.Equal(t, StatusSent, row.Status)
	assert.Equal(t, int64(42), row.ContractID)
	assert.Equal(t, "ops@example.com,legal@example.com", row.Recipients)
	assert.Equal(t, DefaultSubject, row.Subject)
	assert.NotNil(t, row.SentAt)
}

func TestDispatchInvalidRecipientLeavesNoTrace(t *testing.T) {
	tests := []struct {
		name       string
		recipients RecipientList
	}{
		{"missing at sign", RecipientList{"ops.example.com"}},
		{"missing dot", RecipientList{"ops@example"}},
		{"one bad entry aborts all", RecipientList{"ops@example.com", "bad"}},
		{"empty after trimming", RecipientList{"  ", ""}},
		{"no recipients", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &MockLedger{}
			sender := &MockSender{}
			svc := newTestService(nil, ledger, sender)

			_, err := svc.Dispatch(context.Background(), 1, 42, DispatchRequest{
				Kind:       KindDailyReminder,
				Recipients: tt.recipients,
			})

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Empty(t, sender.Calls, "no email may be attempted")
			assert.Empty(t, ledger.Rows, "no ledger row may be written")
		})
	}
}

func TestDispatchMissingKind(t *testing.T) {
	ledger := &MockLedger{}
	svc := newTestService(nil, ledger, &MockSender{})

	_, err := svc.Dispatch(context.Background(), 1, 42, DispatchRequest{
		Recipients: RecipientList{"ops@example.com"},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, ledger.Rows)
}

func TestDispatchDeliveryFailureIsLedgered(t *testing.T) {
	ledger := &MockLedger{}
	sender := &MockSender{Err: errors.New("smtp unreachable")}
	svc := newTestService(nil, ledger, sender)

	_, err := svc.Dispatch(context.Background(), 1, 42, DispatchRequest{
		Kind:       KindDailyReminder,
		Recipients: RecipientList{"ops@example.com"},
	})
	require.ErrorIs(t, err, ErrDeliveryFailed)

	require.Len(t, ledger.Rows, 1, "failed sends are recorded, not discarded")
	row := ledger.Rows[0]
	assert.Equal(t, StatusError, row.Status)
	assert.Nil(t, row.SentAt)
}

func TestDispatchUnknownContract(t *testing.T) {
	finder := &MockContractFinder{
		FindForUserFunc: func(ctx context.Context, id, userID int64) (*contract.Contract, error) {
			return nil, contract.ErrNotFound
		},
	}
	ledger := &MockLedger{}
	svc := newTestService(finder, ledger, &MockSender{})

	_, err := svc.Dispatch(context.Background(), 1, 999, DispatchRequest{
		Kind:       KindDailyReminder,
		Recipients: RecipientList{"ops@example.com"},
	})
	require.ErrorIs(t, err, contract.ErrNotFound)
	assert.Empty(t, ledger.Rows)
}

func TestDispatchRetryAppendsNewRow(t *testing.T) {
	ledger := &MockLedger{}
	sender := &MockSender{Err: errors.New("down")}
	svc := newTestService(nil, ledger, sender)

	req := DispatchRequest{Kind: KindDailyReminder, Recipients: RecipientList{"ops@example.com"}}
	_, err := svc.Dispatch(context.Background(), 1, 42, req)
	require.ErrorIs(t, err, ErrDeliveryFailed)

	sender.Err = nil
	sent, err := svc.Dispatch(context.Background(), 1, 42, req)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	require.Len(t, ledger.Rows, 2, "history is never overwritten")
	assert.Equal(t, StatusError, ledger.Rows[0].Status)
	assert.Equal(t, StatusSent, ledger.Rows[1].Status)
}

func TestDispatchCommaStringRecipients(t *testing.T) {
	ledger := &MockLedger{}
	sender := &MockSender{}
	svc := newTestService(nil, ledger, sender)

	var recipients RecipientList
	require.NoError(t, recipients.UnmarshalJSON([]byte(`"a@b.com , c@d.com,"`)))

	sent, err := svc.Dispatch(context.Background(), 1, 42, DispatchRequest{
		Kind:       KindMonthlyReminder,
		Recipients: recipients,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, []string{"a@b.com", "c@d.com"}, sender.Calls[0])
}
