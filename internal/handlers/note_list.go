package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/noteshq/notes-api/internal/middlewares"
	"github.com/noteshq/notes-api/internal/models"
	"github.com/noteshq/notes-api/internal/repositories"
	"github.com/noteshq/notes-api/internal/services"
)

// NoteLister defines the interface that the service must implement.
type NoteLister interface {
	List(ctx context.Context, authorID uuid.UUID, filter repositories.NoteFilter) (*services.NotePage, error)
}

// NoteListResponse is one page of note summaries, newest first
// swagger:model NoteListResponse
type NoteListResponse struct {
	Docs []models.NoteListItem `json:"docs"`
	// Created-before cursor for the next page, absent on the last page
	NextCursor *time.Time `json:"nextCursor,omitempty"`
}

// NewNoteListHandler returns an HTTP handler for listing the caller's notes.
// @Summary List notes
// @Description Returns the caller's notes 20 per page, newest first. Status defaults to active.
// @Tags notes
// @Produce json
// @Param cursor query string false "RFC 3339 created-before cursor from the previous page"
// @Param status query string false "active or archived" default(active)
// @Param tag query string false "Exact tag match"
// @Param search query string false "Case-insensitive substring in title or content"
// @Success 200 {object} handlers.Response "Page of note summaries"
// @Failure 400 {object} handlers.Response "Malformed query parameter"
// @Failure 401 {object} handlers.Response "Missing or invalid session token"
// @Security BearerAuth
// @Router /notes [get]
func NewNoteListHandler(svc NoteLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.ClaimsFromContext(r.Context())
		if claims == nil {
			writeError(w, http.StatusUnauthorized, "Authentication required. Please log in.")
			return
		}

		var filter repositories.NoteFilter
		q := r.URL.Query()

		if raw := q.Get("cursor"); raw != "" {
			cursor, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Cursor must be an RFC 3339 timestamp.")
				return
			}
			filter.Cursor = &cursor
		}
		if raw := q.Get("status"); raw != "" {
			status := models.NoteStatus(raw)
			if !status.Valid() {
				writeError(w, http.StatusBadRequest, "Status must be active or archived.")
				return
			}
			filter.Status = &status
		}
		if tag := q.Get("tag"); tag != "" {
			filter.Tag = &tag
		}
		if search := q.Get("search"); search != "" {
			filter.Search = &search
		}

		page, err := svc.List(r.Context(), claims.UserID, filter)
		if err != nil {
			writeAppError(w, err)
			return
		}

		writeData(w, http.StatusOK, NoteListResponse{Docs: page.Docs, NextCursor: page.NextCursor})
	}
}
