package models

// Account lifecycle event types published to Kafka.
const (
	EventUserSignedUp        = "user.signed_up"
	EventUserVerified        = "user.verified"
	EventUserPasswordChanged = "user.password_changed"
)

// AccountEvent is the payload published for account lifecycle changes.
type AccountEvent struct {
	EventID   string `json:"event_id"`  // Unique event identifier
	Type      string `json:"type"`      // One of the Event* constants
	UserID    string `json:"user_id"`   // Affected user
	Email     string `json:"email"`     // User email at event time
	Timestamp int64  `json:"timestamp"` // Unix seconds
}
