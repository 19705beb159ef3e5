package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/noteshq/notes-api/internal/services"
)

// CodeResender defines the interface that the service must implement.
type CodeResender interface {
	ResendCode(ctx context.Context, email string) (*services.SignUpResult, error)
}

// ResendCodeRequest represents the JSON body for requesting a fresh code
// swagger:model ResendCodeRequest
type ResendCodeRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`
}

// NewResendCodeHandler returns an HTTP handler that re-issues the one-time code.
// @Summary Request a new verification code
// @Description Replaces the pending one-time code and emails it again, together with a fresh verification token.
// @Tags auth
// @Accept json
// @Produce json
// @Param resendCodeRequest body handlers.ResendCodeRequest true "Resend code request"
// @Success 200 {object} handlers.Response "Fresh verification token issued"
// @Failure 400 {object} handlers.Response "Invalid email"
// @Failure 409 {object} handlers.Response "No pending registration / already verified"
// @Router /auth/verification-code [post]
func NewResendCodeHandler(svc CodeResender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResendCodeRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body.")
			return
		}

		if !validEmail(req.Email) {
			writeError(w, http.StatusBadRequest, "Invalid email address.")
			return
		}

		res, err := svc.ResendCode(r.Context(), req.Email)
		if err != nil {
			writeAppError(w, err)
			return
		}

		writeData(w, http.StatusOK, SignUpResponse{
			VerificationToken: res.VerificationToken,
			OTPExpiresAt:      res.OTPExpiresAt,
		})
	}
}
