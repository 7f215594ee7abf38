package contract

import (
	"time"
)

// Contract is a tracked agreement owned by exactly one user. Start and end
// dates are kept as raw strings because upstream writers never agreed on one
// encoding; see dates.go for the parsing rules.
type Contract struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	UserID        int64     `json:"-"`
	DaysRemaining *int      `json:"days_remaining"`
}

// StatusActive is the only status value the dashboard treats as active.
// Everything else is an opaque label chosen by the caller.
const StatusActive = "active"

// Annotate computes the days-remaining field relative to now. Unparseable end
// dates leave it nil rather than failing the read.
func (c *Contract) Annotate(now time.Time) {
	if days, ok := DaysRemaining(c.EndDate, now); ok {
		c.DaysRemaining = &days
	}
}

// CreateRequest carries the fields for a new contract. Name, StartDate and
// EndDate are required; Status defaults to "active".
type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Status      string `json:"status"`
}

// UpdateRequest is a partial patch. Nil fields are left untouched; updated_at
// is bumped on every call regardless of which fields are present.
type UpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Status      *string `json:"status"`
}
