package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/noteshq/notes-api/internal/models"
	"github.com/noteshq/notes-api/internal/repositories"
	"github.com/noteshq/notes-api/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestNoteListHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	t.Run("no session", func(t *testing.T) {
		svc := NewMockNoteLister(ctrl)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/notes", nil)
		rec := httptest.NewRecorder()

		NewNoteListHandler(svc)(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("passes query filters through", func(t *testing.T) {
		cursor := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		next := cursor.Add(-time.Hour)
		svc := NewMockNoteLister(ctrl)
		svc.EXPECT().
			List(gomock.Any(), userID, gomock.Any()).
			DoAndReturn(func(_ interface{}, _ uuid.UUID, filter repositories.NoteFilter) (*services.NotePage, error) {
				assert.Equal(t, cursor, *filter.Cursor)
				assert.Equal(t, models.NoteStatusArchived, *filter.Status)
				assert.Equal(t, "work", *filter.Tag)
				assert.Equal(t, "meeting", *filter.Search)
				return &services.NotePage{
					Docs: []models.NoteListItem{
						{ID: uuid.New(), Title: "standup", Status: models.NoteStatusArchived},
					},
					NextCursor: &next,
				}, nil
			})

		target := "/api/v1/notes?cursor=2025-06-01T12:00:00Z&status=archived&tag=work&search=meeting"
		req := authenticatedRequest(http.MethodGet, target, "", userID)
		rec := httptest.NewRecorder()

		NewNoteListHandler(svc)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp Response
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.Success)
		data := resp.Data.(map[string]any)
		assert.Len(t, data["docs"], 1)
		assert.NotEmpty(t, data["nextCursor"])
	})

	t.Run("malformed cursor", func(t *testing.T) {
		svc := NewMockNoteLister(ctrl)

		req := authenticatedRequest(http.MethodGet, "/api/v1/notes?cursor=yesterday", "", userID)
		rec := httptest.NewRecorder()

		NewNoteListHandler(svc)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := NewMockNoteLister(ctrl)

		req := authenticatedRequest(http.MethodGet, "/api/v1/notes?status=trashed", "", userID)
		rec := httptest.NewRecorder()

		NewNoteListHandler(svc)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("last page omits the cursor", func(t *testing.T) {
		svc := NewMockNoteLister(ctrl)
		svc.EXPECT().
			List(gomock.Any(), userID, gomock.Any()).
			Return(&services.NotePage{Docs: []models.NoteListItem{}}, nil)

		req := authenticatedRequest(http.MethodGet, "/api/v1/notes", "", userID)
		rec := httptest.NewRecorder()

		NewNoteListHandler(svc)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "nextCursor")
	})
}
