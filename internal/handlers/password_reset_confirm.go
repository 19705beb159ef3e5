package handlers

import (
	"context"
	"encoding/json"
	"net/http"
)

// PasswordResetter defines the interface that the service must implement.
type PasswordResetter interface {
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// PasswordResetConfirmRequest represents the JSON body completing a reset
// swagger:model PasswordResetConfirmRequest
type PasswordResetConfirmRequest struct {
	// Single-use token from the reset email
	// required: true
	Token string `json:"token"`

	// New password
	// required: true
	// default: secret123
	NewPassword string `json:"newPassword"`
}

// NewPasswordResetConfirmHandler returns an HTTP handler that completes a password reset.
// @Summary Complete a password reset
// @Description Sets a new password using the single-use token from the reset email.
// @Tags auth
// @Accept json
// @Produce json
// @Param passwordResetConfirmRequest body handlers.PasswordResetConfirmRequest true "Password reset confirmation"
// @Success 200 {object} handlers.Response "Password updated"
// @Failure 400 {object} handlers.Response "Invalid or expired reset token"
// @Router /auth/password-reset/confirm [post]
func NewPasswordResetConfirmHandler(svc PasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PasswordResetConfirmRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body.")
			return
		}

		if req.Token == "" {
			writeError(w, http.StatusBadRequest, "Reset token is required.")
			return
		}
		if !validNewPassword(req.NewPassword) {
			writeError(w, http.StatusBadRequest, "Password must be between 6 and 64 characters.")
			return
		}

		if err := svc.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
			writeAppError(w, err)
			return
		}

		writeData(w, http.StatusOK, MessageResponse{Message: "Password has been reset."})
	}
}
