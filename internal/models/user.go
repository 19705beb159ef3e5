package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user record in the database.
type User struct {
	ID            uuid.UUID `json:"id" db:"id"`                         // Primary key
	Email         string    `json:"email" db:"email"`                   // Unique email
	Password      *string   `json:"-" db:"password"`                    // Hashed password; nil for external-login accounts
	EmailVerified bool      `json:"email_verified" db:"email_verified"` // Whether the email has been verified
	CreatedAt     time.Time `json:"created_at" db:"created_at"`         // Creation timestamp
}

// UserInfo is the minimal user projection returned to clients after
// login or email verification.
type UserInfo struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
