package notification

import (
	"fmt"
	"time"

	"github.com/sapliy/contractplus/internal/contract"
)

// Tier is the presentational severity of a notification. It drives colors in
// the rendered email and nothing else.
type Tier string

const (
	TierUrgent  Tier = "urgent"
	TierWarning Tier = "warning"
	TierInfo    Tier = "info"
)

// Color returns the accent color for the tier.
func (t Tier) Color() string {
	switch t {
	case TierUrgent:
		return "#dc2626"
	case TierWarning:
		return "#f59e0b"
	default:
		return "#10b981"
	}
}

// Framing is the complete rendered content for one notification: severity
// tier, title, the framed body line, and both email bodies.
type Framing struct {
	Tier     Tier
	Title    string
	Body     string
	BodyHTML string
	BodyText string
}

// Frame selects the urgency tier and default wording for the kind, then
// renders the HTML and plain-text bodies around the contract's details. A
// non-empty customMessage overrides the default body for any kind. The only
// hard failure is an unformattable start or end date; an end date that merely
// cannot be parsed into days-remaining just drops the badge.
func Frame(kind Kind, c *contract.Contract, customMessage, subject string, now time.Time) (*Framing, error) {
	var tier Tier
	var title, body string

	switch kind {
	case KindDailyReminder:
		tier = TierUrgent
		title = "Contract expires tomorrow"
		body = fmt.Sprintf("%s is about to expire.", c.Name)
	case KindWeeklyReminder:
		tier = TierWarning
		title = "Contract nearing expiration"
		body = fmt.Sprintf("%s expires in 7 days.", c.Name)
	case KindMonthlyReminder:
		tier = TierInfo
		title = "Contract reminder"
		body = fmt.Sprintf("%s expires in 30 days.", c.Name)
	default:
		tier = TierInfo
		title = subject
		body = fmt.Sprintf("Notification regarding %s.", c.Name)
	}

	if customMessage != "" {
		body = customMessage
	}

	html, err := renderEmailHTML(subject, title, body, tier, c, now)
	if err != nil {
		return nil, err
	}
	text, err := renderEmailText(subject, title, body, c)
	if err != nil {
		return nil, err
	}

	return &Framing{
		Tier:     tier,
		Title:    title,
		Body:     body,
		BodyHTML: html,
		BodyText: text,
	}, nil
}
