package notification

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Kind tags a notification. The three reminder kinds get dedicated framing;
// anything else is accepted as a free-text tag and framed with the default
// arm.
type Kind string

const (
	KindDailyReminder   Kind = "daily-reminder"
	KindWeeklyReminder  Kind = "weekly-reminder"
	KindMonthlyReminder Kind = "monthly-reminder"
)

type Status string

const (
	StatusSent  Status = "sent"
	StatusError Status = "error"
)

// Notification is an immutable record of one dispatch attempt. Rows are only
// ever inserted; a retry is a new row.
type Notification struct {
	ID           int64      `json:"id"`
	ContractID   int64      `json:"contract_id"`
	ContractName string     `json:"contract_name,omitempty"`
	Kind         Kind       `json:"kind"`
	Subject      string     `json:"subject"`
	Message      string     `json:"message"`
	Recipients   string     `json:"recipients"`
	Status       Status     `json:"status"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// RecipientList accepts either a JSON array of addresses or a single
// comma-separated string; upstream clients send both shapes.
type RecipientList []string

func (r *RecipientList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*r = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("recipients must be a string or an array of strings")
	}
	*r = strings.Split(s, ",")
	return nil
}

// DispatchRequest carries the caller's dispatch parameters for one contract.
type DispatchRequest struct {
	Kind          Kind          `json:"kind"`
	Subject       string        `json:"subject"`
	Recipients    RecipientList `json:"recipients"`
	CustomMessage string        `json:"custom_message"`
}
