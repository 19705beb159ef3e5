package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/noteshq/notes-api/internal/services"
)

// EmailVerifier defines the interface that the service must implement.
type EmailVerifier interface {
	VerifyEmail(ctx context.Context, verificationToken, code string) (*services.AuthResult, error)
}

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// VerifyEmailRequest represents the JSON body for email verification
// swagger:model VerifyEmailRequest
type VerifyEmailRequest struct {
	// Verification token from sign-up
	// required: true
	VerificationToken string `json:"verificationToken"`

	// Six-digit one-time code from the email
	// required: true
	// default: "123456"
	OTP string `json:"otp"`
}

// NewVerifyEmailHandler returns an HTTP handler for email verification.
// @Summary Verify an email address
// @Description Confirms the one-time code and activates the account, returning a full session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param verifyEmailRequest body handlers.VerifyEmailRequest true "Email verification request"
// @Success 200 {object} handlers.Response "Session token issued"
// @Failure 400 {object} handlers.Response "OTP expired or incorrect"
// @Failure 401 {object} handlers.Response "Invalid or expired verification token"
// @Failure 409 {object} handlers.Response "No pending registration"
// @Router /auth/verify-email [post]
func NewVerifyEmailHandler(svc EmailVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VerifyEmailRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body.")
			return
		}

		if req.VerificationToken == "" {
			writeError(w, http.StatusBadRequest, "Verification token is required.")
			return
		}
		if !otpPattern.MatchString(req.OTP) {
			writeError(w, http.StatusBadRequest, "OTP must be a 6-digit code.")
			return
		}

		res, err := svc.VerifyEmail(r.Context(), req.VerificationToken, req.OTP)
		if err != nil {
			writeAppError(w, err)
			return
		}

		writeData(w, http.StatusOK, SessionResponse{Token: res.Token, User: res.User})
	}
}
