package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/noteshq/notes-api/internal/middlewares"
)

// NoteArchiver defines the interface that the service must implement.
type NoteArchiver interface {
	Archive(ctx context.Context, noteID, authorID uuid.UUID) error
}

// NewNoteArchiveHandler returns an HTTP handler for archiving a note.
// @Summary Archive a note
// @Description Moves one of the caller's active notes to archived.
// @Tags notes
// @Produce json
// @Param noteId path string true "Note ID"
// @Success 200 {object} handlers.Response "Note archived"
// @Failure 400 {object} handlers.Response "Invalid note id"
// @Failure 401 {object} handlers.Response "Missing or invalid session token"
// @Failure 404 {object} handlers.Response "Note not found or owned by someone else"
// @Security BearerAuth
// @Router /notes/{noteId}/archive [post]
func NewNoteArchiveHandler(svc NoteArchiver) http.HandlerFunc {
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

		if err := svc.Archive(r.Context(), noteID, claims.UserID); err != nil {
			writeAppError(w, err)
			return
		}

		writeData(w, http.StatusOK, MessageResponse{Message: "Note archived."})
	}
}
