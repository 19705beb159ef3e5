package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/noteshq/notes-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNoteCreateHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockNoteCreator)
		expectedCode int
		wantMessage  string
	}{
		{
			name: "success",
			body: `{"title":"Groceries","content":"milk, eggs","tags":["home"]}`,
			mockSetup: func(m *MockNoteCreator) {
				m.EXPECT().
					Create(gomock.Any(), userID, "Groceries", "milk, eggs", []string{"home"}).
					Return(&models.Note{
						ID:       uuid.New(),
						Title:    "Groceries",
						Content:  "milk, eggs",
						Tags:     []string{"home"},
						AuthorID: userID,
						Status:   models.NoteStatusActive,
					}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "blank title",
			body:         `{"title":"   ","content":"milk"}`,
			mockSetup:    func(m *MockNoteCreator) {},
			expectedCode: http.StatusBadRequest,
			wantMessage:  "Title must be between 1 and 128 characters.",
		},
		{
			name:         "title too long",
			body:         `{"title":"` + strings.Repeat("t", 129) + `","content":"milk"}`,
			mockSetup:    func(m *MockNoteCreator) {},
			expectedCode: http.StatusBadRequest,
			wantMessage:  "Title must be between 1 and 128 characters.",
		},
		{
			name:         "empty content",
			body:         `{"title":"Groceries","content":""}`,
			mockSetup:    func(m *MockNoteCreator) {},
			expectedCode: http.StatusBadRequest,
			wantMessage:  "Content must be between 1 and 10000 characters.",
		},
		{
			name:         "content too long",
			body:         `{"title":"Groceries","content":"` + strings.Repeat("c", 10001) + `"}`,
			mockSetup:    func(m *MockNoteCreator) {},
			expectedCode: http.StatusBadRequest,
			wantMessage:  "Content must be between 1 and 10000 characters.",
		},
		{
			name:         "too many tags",
			body:         `{"title":"Groceries","content":"milk","tags":["a","b","c","d"]}`,
			mockSetup:    func(m *MockNoteCreator) {},
			expectedCode: http.StatusBadRequest,
			wantMessage:  "At most 3 non-empty tags are allowed.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMockNoteCreator(ctrl)
			tt.mockSetup(svc)

			req := authenticatedRequest(http.MethodPost, "/api/v1/notes", tt.body, userID)
			rec := httptest.NewRecorder()

			NewNoteCreateHandler(svc)(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)

			var resp Response
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

			if tt.expectedCode == http.StatusCreated {
				assert.True(t, resp.Success)
				data := resp.Data.(map[string]any)
				assert.Equal(t, "Groceries", data["title"])
				assert.Equal(t, string(models.NoteStatusActive), data["status"])
			} else {
				assert.Equal(t, tt.wantMessage, resp.Error.Message)
			}
		})
	}
}
