package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/noteshq/notes-api/internal/models"
	"github.com/noteshq/notes-api/internal/services"
)

// Loginer defines the interface that the service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
}

// LoginRequest represents the JSON body for logging in
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// SessionResponse carries a session token plus the user projection
// swagger:model SessionResponse
type SessionResponse struct {
	Token string          `json:"token"`
	User  models.UserInfo `json:"user"`
}

// NewLoginHandler returns an HTTP handler for logging in.
// @Summary Log in with email and password
// @Description Issues a session token for a verified account.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login request"
// @Success 200 {object} handlers.Response "Session token issued"
// @Failure 400 {object} handlers.Response "Email not verified / invalid credentials"
// @Failure 404 {object} handlers.Response "User not found"
// @Router /auth/log-in [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body.")
			return
		}

		if !validEmail(req.Email) {
			writeError(w, http.StatusBadRequest, "Invalid email address.")
			return
		}
		if !validPassword(req.Password) {
			writeError(w, http.StatusBadRequest, "Password is required.")
			return
		}

		res, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeAppError(w, err)
			return
		}

		writeData(w, http.StatusOK, SessionResponse{Token: res.Token, User: res.User})
	}
}
