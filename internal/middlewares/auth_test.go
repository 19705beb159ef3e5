package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/noteshq/notes-api/internal/jwt"
	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name       string
		setup      func(m *MockTokener)
		wantStatus int
		wantClaims bool
	}{
		{
			name: "missing token",
			setup: func(m *MockTokener) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("", errors.New("authorization header missing"))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "invalid token",
			setup: func(m *MockTokener) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("bad", nil)
				m.EXPECT().GetClaims(gomock.Any(), "bad").Return(nil, jwt.ErrInvalidToken)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "valid token",
			setup: func(m *MockTokener) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("good", nil)
				m.EXPECT().GetClaims(gomock.Any(), "good").
					Return(&jwt.Claims{UserID: userID, Email: "a@b.com"}, nil)
			},
			wantStatus: http.StatusOK,
			wantClaims: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokener := NewMockTokener(ctrl)
			tt.setup(tokener)

			var gotClaims *jwt.Claims
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotClaims = ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/notes", nil)
			rec := httptest.NewRecorder()

			AuthMiddleware(tokener)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantClaims {
				assert.Equal(t, userID, gotClaims.UserID)
				assert.Equal(t, "a@b.com", gotClaims.Email)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				assert.JSONEq(t,
					`{"success":false,"error":{"message":"Authentication required. Please log in."}}`,
					rec.Body.String(),
				)
			}
		})
	}
}

func TestClaimsFromContext_Absent(t *testing.T) {
	assert.Nil(t, ClaimsFromContext(context.Background()))
}
