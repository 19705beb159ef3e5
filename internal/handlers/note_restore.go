package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/noteshq/notes-api/internal/middlewares"
)

// NoteRestorer defines the interface that the service must implement.
type NoteRestorer interface {
	Restore(ctx context.Context, noteID, authorID uuid.UUID) error
}

// NewNoteRestoreHandler returns an HTTP handler for restoring a note.
// @Summary Restore a note
// @Description Moves one of the caller's archived notes back to active.
// @Tags notes
// @Produce json
// @Param noteId path string true "Note ID"
// @Success 200 {object} handlers.Response "Note restored"
// @Failure 400 {object} handlers.Response "Invalid note id"
// @Failure 401 {object} handlers.Response "Missing or invalid session token"
// @Failure 404 {object} handlers.Response "Note not found or owned by someone else"
// @Security BearerAuth
// @Router /notes/{noteId}/restore [post]
func NewNoteRestoreHandler(svc NoteRestorer) http.HandlerFunc {
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

		if err := svc.Restore(r.Context(), noteID, claims.UserID); err != nil {
			writeAppError(w, err)
			return
		}

		writeData(w, http.StatusOK, MessageResponse{Message: "Note restored."})
	}
}
