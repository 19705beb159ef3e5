package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/noteshq/notes-api/internal/apperr"
	"github.com/noteshq/notes-api/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestSignUpHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	expiresAt := time.Now().Add(5 * time.Minute).UTC().Truncate(time.Second)

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockSignUpper)
		expectedCode int
		wantMessage  string
	}{
		{
			name: "success",
			body: `{"email":"john@example.com","password":"secret123"}`,
			mockSetup: func(m *MockSignUpper) {
				m.EXPECT().
					SignUp(gomock.Any(), "john@example.com", "secret123").
					Return(&services.SignUpResult{VerificationToken: "vtok", OTPExpiresAt: expiresAt}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "invalid json",
			body:         `{not json`,
			mockSetup:    func(m *MockSignUpper) {},
			expectedCode: http.StatusBadRequest,
			wantMessage:  "Invalid request body.",
		},
		{
			name:         "invalid email",
			body:         `{"email":"not-an-email","password":"secret123"}`,
			mockSetup:    func(m *MockSignUpper) {},
			expectedCode: http.StatusBadRequest,
			wantMessage:  "Invalid email address.",
		},
		{
			name:         "password too short",
			body:         `{"email":"john@example.com","password":"abc"}`,
			mockSetup:    func(m *MockSignUpper) {},
			expectedCode: http.StatusBadRequest,
			wantMessage:  "Password must be between 6 and 64 characters.",
		},
		{
			name:         "password too long",
			body:         `{"email":"john@example.com","password":"` + strings.Repeat("x", 65) + `"}`,
			mockSetup:    func(m *MockSignUpper) {},
			expectedCode: http.StatusBadRequest,
			wantMessage:  "Password must be between 6 and 64 characters.",
		},
		{
			name: "account already exists",
			body: `{"email":"john@example.com","password":"secret123"}`,
			mockSetup: func(m *MockSignUpper) {
				m.EXPECT().
					SignUp(gomock.Any(), "john@example.com", "secret123").
					Return(nil, apperr.Conflict("Account already exists. Please login."))
			},
			expectedCode: http.StatusConflict,
			wantMessage:  "Account already exists. Please login.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMockSignUpper(ctrl)
			tt.mockSetup(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/sign-up", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			NewSignUpHandler(svc)(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)

			var resp Response
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

			if tt.expectedCode == http.StatusCreated {
				assert.True(t, resp.Success)
				data := resp.Data.(map[string]any)
				assert.Equal(t, "vtok", data["verificationToken"])
			} else {
				assert.False(t, resp.Success)
				assert.Equal(t, tt.wantMessage, resp.Error.Message)
			}
		})
	}
}
