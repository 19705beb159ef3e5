package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/noteshq/notes-api/internal/services"
)

// SignUpper defines the interface that the service must implement.
type SignUpper interface {
	SignUp(ctx context.Context, email, password string) (*services.SignUpResult, error)
}

// SignUpRequest represents the JSON body for account registration
// swagger:model SignUpRequest
type SignUpRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// SignUpResponse carries the short-lived verification token for the
// email confirmation step
// swagger:model SignUpResponse
type SignUpResponse struct {
	VerificationToken string    `json:"verificationToken"`
	OTPExpiresAt      time.Time `json:"otpExpiresAt"`
}

// NewSignUpHandler returns an HTTP handler for account registration.
// @Summary Register a new account
// @Description Creates a pending account and emails a one-time code. Repeating the call before verification re-issues the code.
// @Tags auth
// @Accept json
// @Produce json
// @Param signUpRequest body handlers.SignUpRequest true "Account registration request"
// @Success 201 {object} handlers.Response "Verification token issued"
// @Failure 400 {object} handlers.Response "Invalid email or password"
// @Failure 409 {object} handlers.Response "Account already exists"
// @Router /auth/sign-up [post]
func NewSignUpHandler(svc SignUpper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignUpRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body.")
			return
		}

		if !validEmail(req.Email) {
			writeError(w, http.StatusBadRequest, "Invalid email address.")
			return
		}
		if !validNewPassword(req.Password) {
			writeError(w, http.StatusBadRequest, "Password must be between 6 and 64 characters.")
			return
		}

		res, err := svc.SignUp(r.Context(), req.Email, req.Password)
		if err != nil {
			writeAppError(w, err)
			return
		}

		writeData(w, http.StatusCreated, SignUpResponse{
			VerificationToken: res.VerificationToken,
			OTPExpiresAt:      res.OTPExpiresAt,
		})
	}
}
