package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	"github.com/noteshq/notes-api/internal/apperr"
	"github.com/noteshq/notes-api/internal/logger"
	"github.com/noteshq/notes-api/internal/models"
)

// ResetTokenStore stores single-use password reset tokens.
type ResetTokenStore interface {
	Store(ctx context.Context, token string, userID uuid.UUID) error
	Get(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}

// UserService handles password management for authenticated and
// locked-out users.
type UserService struct {
	userReader  UserReader
	userWriter  UserWriter
	resetTokens ResetTokenStore
	emails      EmailSender
	kafkaWriter KafkaWriter
}

// NewUserService creates a new UserService instance.
func NewUserService(
	userReader UserReader,
	userWriter UserWriter,
	resetTokens ResetTokenStore,
	emails EmailSender,
	kafkaWriter KafkaWriter,
) *UserService {
	return &UserService{
		userReader:  userReader,
		userWriter:  userWriter,
		resetTokens: resetTokens,
		emails:      emails,
		kafkaWriter: kafkaWriter,
	}
}

// ChangePassword replaces the password of an authenticated user. The old
// password must match unless the account has none set. The existing
// session stays valid.
func (svc *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := svc.userReader.GetByID(ctx, userID)
	if err != nil {
		return apperr.Internal("Cannot update password at the moment.", err)
	}
	if user == nil {
		return apperr.NotFound("User not found.")
	}

	if user.Password != nil && !passwordMatches(oldPassword, *user.Password) {
		return apperr.Validation("Password does not match.")
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return apperr.Internal("Cannot update password at the moment.", err)
	}

	if err := svc.userWriter.UpdatePassword(ctx, userID, hash); err != nil {
		logger.Log.Errorw("failed to update password", "user_id", userID, "error", err)
		return apperr.Internal("Cannot update password at the moment.", err)
	}

	publishAccountEvent(ctx, svc.kafkaWriter, models.EventUserPasswordChanged, user.ID, user.Email)
	return nil
}

// RequestPasswordReset issues a reset token and emails it. It always
// reports success so callers cannot probe which emails are registered.
func (svc *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := svc.userReader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Warnw("failed to get user for password reset", "error", err)
		return nil
	}
	if user == nil {
		return nil
	}

	token, err := generateResetToken()
	if err != nil {
		logger.Log.Warnw("failed to generate reset token", "error", err)
		return nil
	}

	if err := svc.resetTokens.Store(ctx, token, user.ID); err != nil {
		logger.Log.Warnw("failed to store reset token", "error", err)
		return nil
	}

	if err := svc.emails.SendPasswordReset(ctx, email, token); err != nil {
		logger.Log.Warnw("failed to send password reset email", "email", email, "error", err)
	}

	return nil
}

// ResetPassword consumes a reset token and sets a new password.
func (svc *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := svc.resetTokens.Get(ctx, token)
	if err != nil {
		return apperr.Internal("Cannot reset password at the moment.", err)
	}
	if userID == uuid.Nil {
		return apperr.Validation("Invalid or expired reset token.")
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return apperr.Internal("Cannot reset password at the moment.", err)
	}

	if err := svc.userWriter.UpdatePassword(ctx, userID, hash); err != nil {
		logger.Log.Errorw("failed to reset password", "user_id", userID, "error", err)
		return apperr.Internal("Cannot reset password at the moment.", err)
	}

	if err := svc.resetTokens.Delete(ctx, token); err != nil {
		logger.Log.Warnw("failed to delete used reset token", "error", err)
	}

	return nil
}


// generateResetToken creates a cryptographically secure random token.
func generateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
