package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/noteshq/notes-api/internal/apperr"
	"github.com/noteshq/notes-api/internal/models"
	"github.com/noteshq/notes-api/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestVerifyEmailHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockEmailVerifier)
		expectedCode int
		wantMessage  string
	}{
		{
			name: "success",
			body: `{"verificationToken":"vtok","otp":"123456"}`,
			mockSetup: func(m *MockEmailVerifier) {
				m.EXPECT().
					VerifyEmail(gomock.Any(), "vtok", "123456").
					Return(&services.AuthResult{
						Token: "session-token",
						User:  models.UserInfo{ID: uuid.New(), Email: "john@example.com"},
					}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "missing token",
			body:         `{"verificationToken":"","otp":"123456"}`,
			mockSetup:    func(m *MockEmailVerifier) {},
			expectedCode: http.StatusBadRequest,
			wantMessage:  "Verification token is required.",
		},
		{
			name:         "malformed otp",
			body:         `{"verificationToken":"vtok","otp":"12ab56"}`,
			mockSetup:    func(m *MockEmailVerifier) {},
			expectedCode: http.StatusBadRequest,
			wantMessage:  "OTP must be a 6-digit code.",
		},
		{
			name: "expired verification token",
			body: `{"verificationToken":"stale","otp":"123456"}`,
			mockSetup: func(m *MockEmailVerifier) {
				m.EXPECT().
					VerifyEmail(gomock.Any(), "stale", "123456").
					Return(nil, apperr.Authentication("Invalid or expired verification token."))
			},
			expectedCode: http.StatusUnauthorized,
			wantMessage:  "Invalid or expired verification token.",
		},
		{
			name: "expired otp",
			body: `{"verificationToken":"vtok","otp":"123456"}`,
			mockSetup: func(m *MockEmailVerifier) {
				m.EXPECT().
					VerifyEmail(gomock.Any(), "vtok", "123456").
					Return(nil, apperr.Validation("OTP is expired."))
			},
			expectedCode: http.StatusBadRequest,
			wantMessage:  "OTP is expired.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMockEmailVerifier(ctrl)
			tt.mockSetup(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/verify-email", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			NewVerifyEmailHandler(svc)(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)

			var resp Response
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

			if tt.expectedCode == http.StatusOK {
				assert.True(t, resp.Success)
				data := resp.Data.(map[string]any)
				assert.Equal(t, "session-token", data["token"])
			} else {
				assert.Equal(t, tt.wantMessage, resp.Error.Message)
			}
		})
	}
}
