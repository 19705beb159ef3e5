package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/noteshq/notes-api/internal/middlewares"
	"github.com/noteshq/notes-api/internal/models"
)

// NoteCreator defines the interface that the service must implement.
type NoteCreator interface {
	Create(ctx context.Context, authorID uuid.UUID, title, content string, tags []string) (*models.Note, error)
}

// NoteCreateRequest represents the JSON body for creating a note
// swagger:model NoteCreateRequest
type NoteCreateRequest struct {
	// Title, up to 128 characters
	// required: true
	// default: Groceries
	Title string `json:"title"`

	// Content, 1 to 10000 characters
	// default: milk, eggs
	Content string `json:"content"`

	// Up to 3 tags
	Tags []string `json:"tags"`
}

// NewNoteCreateHandler returns an HTTP handler for creating a note.
// @Summary Create a note
// @Description Stores a new note for the caller. Notes always start active.
// @Tags notes
// @Accept json
// @Produce json
// @Param noteCreateRequest body handlers.NoteCreateRequest true "Note creation request"
// @Success 201 {object} handlers.Response "Created note"
// @Failure 400 {object} handlers.Response "Invalid title, content or tags"
// @Failure 401 {object} handlers.Response "Missing or invalid session token"
// @Security BearerAuth
// @Router /notes [post]
func NewNoteCreateHandler(svc NoteCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.ClaimsFromContext(r.Context())
		if claims == nil {
			writeError(w, http.StatusUnauthorized, "Authentication required. Please log in.")
			return
		}

		var req NoteCreateRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body.")
			return
		}

		if !validTitle(req.Title) {
			writeError(w, http.StatusBadRequest, "Title must be between 1 and 128 characters.")
			return
		}
		if !validContent(req.Content) {
			writeError(w, http.StatusBadRequest, "Content must be between 1 and 10000 characters.")
			return
		}
		if !validTags(req.Tags) {
			writeError(w, http.StatusBadRequest, "At most 3 non-empty tags are allowed.")
			return
		}

		note, err := svc.Create(r.Context(), claims.UserID, req.Title, req.Content, req.Tags)
		if err != nil {
			writeAppError(w, err)
			return
		}

		writeData(w, http.StatusCreated, note)
	}
}
