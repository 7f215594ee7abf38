package notification

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// Sender delivers one email to all recipients in a single message. Delivery
// is binary: there is no per-recipient outcome.
type Sender interface {
	Send(ctx context.Context, to []string, subject, htmlBody, textBody string) error
}

// ResendSender delivers email through the Resend API.
type ResendSender struct {
	client    *resend.Client
	fromEmail string
}

func NewResendSender(apiKey, fromEmail string) *ResendSender {
	if fromEmail == "" {
		fromEmail = "onboarding@resend.dev"
	}
	return &ResendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
	}
}

func (s *ResendSender) Send(ctx context.Context, to []string, subject, htmlBody, textBody string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("CONTRACT+ <%s>", s.fromEmail),
		To:      to,
		Subject: subject,
		Html:    htmlBody,
		Text:    textBody,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}
	return nil
}

// LogSender writes the email to the log instead of delivering it. Used in
// development when no Resend API key is configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, to []string, subject, htmlBody, textBody string) error {
	log.Printf("[EMAIL] To: %v", to)
	log.Printf("[EMAIL] Subject: %s", subject)
	log.Printf("[EMAIL] Body:\n%s", textBody)
	return nil
}
