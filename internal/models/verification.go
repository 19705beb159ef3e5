package models

import (
	"time"

	"github.com/google/uuid"
)

// UserVerification holds the pending email verification state for a user.
// At most one row exists per user (unique on user_id); the row is created
// on sign-up, replaced on resend and deleted once verification succeeds.
type UserVerification struct {
	ID           uuid.UUID  `json:"id" db:"id"`                         // Primary key
	UserID       uuid.UUID  `json:"user_id" db:"user_id"`               // Owning user, unique
	OTP          string     `json:"-" db:"otp"`                         // Hashed one-time code; plaintext is never stored
	OTPExpiresAt time.Time  `json:"otp_expires_at" db:"otp_expires_at"` // Expiry of the current code
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`         // Creation timestamp
	UpdatedAt    *time.Time `json:"updated_at" db:"updated_at"`         // Last resend timestamp
}
