package handlers

import (
	"context"
	"encoding/json"
	"net/http"
)

// PasswordResetRequester defines the interface that the service must implement.
type PasswordResetRequester interface {
	RequestPasswordReset(ctx context.Context, email string) error
}

// PasswordResetRequest represents the JSON body for requesting a reset link
// swagger:model PasswordResetRequest
type PasswordResetRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`
}

// MessageResponse carries a plain informational message
// swagger:model MessageResponse
type MessageResponse struct {
	Message string `json:"message"`
}

// NewPasswordResetHandler returns an HTTP handler that starts a password reset.
// @Summary Request a password reset link
// @Description Emails a single-use reset link. Responds identically whether or not the address has an account.
// @Tags auth
// @Accept json
// @Produce json
// @Param passwordResetRequest body handlers.PasswordResetRequest true "Password reset request"
// @Success 200 {object} handlers.Response "Reset link sent if the account exists"
// @Failure 400 {object} handlers.Response "Invalid email"
// @Router /auth/password-reset [post]
func NewPasswordResetHandler(svc PasswordResetRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PasswordResetRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body.")
			return
		}

		if !validEmail(req.Email) {
			writeError(w, http.StatusBadRequest, "Invalid email address.")
			return
		}

		if err := svc.RequestPasswordReset(r.Context(), req.Email); err != nil {
			writeAppError(w, err)
			return
		}

		writeData(w, http.StatusOK, MessageResponse{
			Message: "If that email is registered, a reset link is on its way.",
		})
	}
}
