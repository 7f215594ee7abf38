package auth

import (
	"time"
)

// User owns contracts. Accounts are provisioned out of band (default admin
// seeding or an operator); this service never deletes them.
type User struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
