package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/noteshq/notes-api/internal/middlewares"
	"github.com/noteshq/notes-api/internal/models"
	"github.com/noteshq/notes-api/internal/services"
)

// NoteUpdater defines the interface that the service must implement.
type NoteUpdater interface {
	Update(ctx context.Context, noteID, authorID uuid.UUID, patch services.NotePatch) (*models.Note, error)
}

// NoteUpdateRequest represents the JSON body for a partial note update.
// Absent fields stay untouched; at least one must be present
// swagger:model NoteUpdateRequest
type NoteUpdateRequest struct {
	// Title, up to 128 characters
	Title *string `json:"title"`

	// Content, 1 to 10000 characters
	Content *string `json:"content"`

	// Up to 3 tags, replaces the whole set
	Tags []string `json:"tags"`
}

// NewNoteUpdateHandler returns an HTTP handler for updating a note.
// @Summary Update a note
// @Description Applies a partial update to one of the caller's notes.
// @Tags notes
// @Accept json
// @Produce json
// @Param noteId path string true "Note ID"
// @Param noteUpdateRequest body handlers.NoteUpdateRequest true "Partial note update"
// @Success 200 {object} handlers.Response "Updated note"
// @Failure 400 {object} handlers.Response "Invalid fields or empty patch"
// @Failure 401 {object} handlers.Response "Missing or invalid session token"
// @Failure 404 {object} handlers.Response "Note not found or owned by someone else"
// @Security BearerAuth
// @Router /notes/{noteId} [patch]
func NewNoteUpdateHandler(svc NoteUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.ClaimsFromContext(r.Context())
		if claims == nil {
			writeError(w, http.StatusUnauthorized, "Authentication required. Please log in.")
			return
		}

		noteID, ok := parseNoteID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid note id.")
			return
		}

		var req NoteUpdateRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body.")
			return
		}

		if req.Title != nil && !validTitle(*req.Title) {
			writeError(w, http.StatusBadRequest, "Title must be between 1 and 128 characters.")
			return
		}
		if req.Content != nil && !validContent(*req.Content) {
			writeError(w, http.StatusBadRequest, "Content must be between 1 and 10000 characters.")
			return
		}
		if req.Tags != nil && !validTags(req.Tags) {
			writeError(w, http.StatusBadRequest, "At most 3 non-empty tags are allowed.")
			return
		}

		patch := services.NotePatch{Title: req.Title, Content: req.Content, Tags: req.Tags}

		note, err := svc.Update(r.Context(), noteID, claims.UserID, patch)
		if err != nil {
			writeAppError(w, err)
			return
		}

		writeData(w, http.StatusOK, note)
	}
}
