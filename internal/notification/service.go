package notification

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sapliy/contractplus/internal/contract"
)

// ErrDeliveryFailed means the email collaborator rejected the send. The
// attempt is already recorded in the ledger by the time this is returned.
var ErrDeliveryFailed = errors.New("notification delivery failed")

// ValidationError reports a missing or malformed dispatch field. Validation
// happens before any side effect, so a ValidationError guarantees no email
// was sent and no ledger row was written.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ContractFinder is the slice of the contract repository dispatch needs:
// ownership-scoped lookup only.
type ContractFinder interface {
	FindForUser(ctx context.Context, id, userID int64) (*contract.Contract, error)
}

// Ledger persists dispatch outcomes.
type Ledger interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID int64) ([]*Notification, error)
}

// Service orchestrates notification dispatch: ownership check, validation,
// framing, one synchronous delivery attempt, and the ledger write.
type Service struct {
	contracts ContractFinder
	ledger    Ledger
	sender    Sender
}

func NewService(contracts ContractFinder, ledger Ledger, sender Sender) *Service {
	return &Service{
		contracts: contracts,
		ledger:    ledger,
		sender:    sender,
	}
}

// Dispatch frames and sends one notification for the user's contract and
// records the outcome. Returns the number of recipients addressed on success.
// Failed deliveries are recorded too; only validation and ownership failures
// leave no trace.
func (s *Service) Dispatch(ctx context.Context, userID, contractID int64, req DispatchRequest) (int, error) {
	c, err := s.contracts.FindForUser(ctx, contractID, userID)
	if err != nil {
		return 0, err
	}

	if req.Kind == "" {
		return 0, &ValidationError{Reason: "kind is required"}
	}
	recipients, err := normalizeRecipients(req.Recipients)
	if err != nil {
		return 0, err
	}

	subject := req.Subject
	if subject == "" {
		subject = DefaultSubject
	}

	now := time.Now().UTC()
	framing, err := Frame(req.Kind, c, req.CustomMessage, subject, now)
	if err != nil {
		return 0, err
	}

	sendErr := s.sender.Send(ctx, recipients, subject, framing.BodyHTML, framing.BodyText)

	n := &Notification{
		ContractID: c.ID,
		Kind:       req.Kind,
		Subject:    subject,
		Message:    framing.Body,
		Recipients: strings.Join(recipients, ","),
		Status:     StatusSent,
	}
	if sendErr != nil {
		n.Status = StatusError
	} else {
		sentAt := time.Now().UTC()
		n.SentAt = &sentAt
	}

	// The ledger write happens regardless of the delivery outcome; failed
	// sends are history, not noise.
	if err := s.ledger.Create(ctx, n); err != nil {
		return 0, err
	}
	dispatchesTotal.WithLabelValues(string(n.Status)).Inc()

	if sendErr != nil {
		log.Printf("Notification delivery failed for contract %d: %v", c.ID, sendErr)
		return 0, fmt.Errorf("%w: %v", ErrDeliveryFailed, sendErr)
	}

	log.Printf("Notification %d sent for contract %d to %d recipient(s)", n.ID, c.ID, len(recipients))
	return len(recipients), nil
}

// ListForUser returns the user's notification history, newest first.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]*Notification, error) {
	return s.ledger.ListByUser(ctx, userID)
}

// normalizeRecipients trims entries, drops empties, and applies the
// deliberately loose address check: each entry must contain both "@" and ".".
// One bad entry fails the whole list.
func normalizeRecipients(raw RecipientList) ([]string, error) {
	var recipients []string
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		recipients = append(recipients, r)
	}
	if len(recipients) == 0 {
		return nil, &ValidationError{Reason: "recipients are required"}
	}
	for _, r := range recipients {
		if !strings.Contains(r, "@") || !strings.Contains(r, ".") {
			return nil, &ValidationError{Reason: fmt.Sprintf("invalid email: %s", r)}
		}
	}
	return recipients, nil
}
