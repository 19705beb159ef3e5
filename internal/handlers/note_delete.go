package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/noteshq/notes-api/internal/middlewares"
)

// NoteDeleter defines the interface that the service must implement.
type NoteDeleter interface {
	Delete(ctx context.Context, noteID, authorID uuid.UUID) error
}

// NewNoteDeleteHandler returns an HTTP handler for deleting a note.
// @Summary Delete a note
// @Description Permanently removes one of the caller's notes in any status.
// @Tags notes
// @Produce json
// @Param noteId path string true "Note ID"
// @Success 200 {object} handlers.Response "Note deleted"
// @Failure 400 {object} handlers.Response "Invalid note id"
// @Failure 401 {object} handlers.Response "Missing or invalid session token"
// @Failure 404 {object} handlers.Response "Note not found or owned by someone else"
// @Security BearerAuth
// @Router /notes/{noteId} [delete]
func NewNoteDeleteHandler(svc NoteDeleter) http.HandlerFunc {
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

		if err := svc.Delete(r.Context(), noteID, claims.UserID); err != nil {
			writeAppError(w, err)
			return
		}

		writeData(w, http.StatusOK, MessageResponse{Message: "Note deleted."})
	}
}
