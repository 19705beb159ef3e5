package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// NoteStatus is the lifecycle state of a note.
type NoteStatus string

const (
	NoteStatusActive   NoteStatus = "active"
	NoteStatusArchived NoteStatus = "archived"
)

// Valid reports whether s is one of the known note statuses.
func (s NoteStatus) Valid() bool {
	return s == NoteStatusActive || s == NoteStatusArchived
}

// Note represents a note record in the database. A note always belongs to
// exactly one user.
type Note struct {
	ID        uuid.UUID      `json:"id" db:"id"`                 // Primary key
	Title     string         `json:"title" db:"title"`           // Up to 128 characters
	Content   string         `json:"content" db:"content"`       // Up to 10000 characters
	Tags      pq.StringArray `json:"tags" db:"tags"`             // Up to 3 short tags
	AuthorID  uuid.UUID      `json:"author_id" db:"author_id"`   // Owning user
	Status    NoteStatus     `json:"status" db:"status"`         // active | archived
	CreatedAt time.Time      `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt *time.Time     `json:"updated_at" db:"updated_at"` // Set on every update
}

// NoteListItem is the trimmed note shape returned by listings: content,
// author and update timestamp are omitted.
type NoteListItem struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	Title     string         `json:"title" db:"title"`
	Tags      pq.StringArray `json:"tags" db:"tags"`
	Status    NoteStatus     `json:"status" db:"status"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}
