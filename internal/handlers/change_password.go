package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/noteshq/notes-api/internal/middlewares"
)

// PasswordChanger defines the interface that the service must implement.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

// ChangePasswordRequest represents the JSON body for changing the password
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// Current password, may be empty for accounts without one
	// default: secret123
	OldPassword string `json:"oldPassword"`

	// New password
	// required: true
	// default: secret456
	NewPassword string `json:"newPassword"`
}

// NewChangePasswordHandler returns an HTTP handler for changing the password.
// @Summary Change the account password
// @Description Replaces the stored password after checking the current one. The existing session stays valid.
// @Tags user
// @Accept json
// @Produce json
// @Param changePasswordRequest body handlers.ChangePasswordRequest true "Change password request"
// @Success 200 {object} handlers.Response "Password updated"
// @Failure 400 {object} handlers.Response "Current password does not match"
// @Failure 401 {object} handlers.Response "Missing or invalid session token"
// @Security BearerAuth
// @Router /user/password [patch]
func NewChangePasswordHandler(svc PasswordChanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.ClaimsFromContext(r.Context())
		if claims == nil {
			writeError(w, http.StatusUnauthorized, "Authentication required. Please log in.")
			return
		}

		var req ChangePasswordRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body.")
			return
		}

		if !validNewPassword(req.NewPassword) {
			writeError(w, http.StatusBadRequest, "Password must be between 6 and 64 characters.")
			return
		}

		if err := svc.ChangePassword(r.Context(), claims.UserID, req.OldPassword, req.NewPassword); err != nil {
			writeAppError(w, err)
			return
		}

		writeData(w, http.StatusOK, MessageResponse{Message: "Password has been changed."})
	}
}
