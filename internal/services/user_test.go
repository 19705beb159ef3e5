package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/noteshq/notes-api/internal/apperr"
	"github.com/noteshq/notes-api/internal/models"
	"github.com/noteshq/notes-api/internal/services"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type userMocks struct {
	userReader  *services.MockUserReader
	userWriter  *services.MockUserWriter
	resetTokens *services.MockResetTokenStore
	emails      *services.MockEmailSender
}

func newUserService(ctrl *gomock.Controller) (*services.UserService, *userMocks) {
	m := &userMocks{
		userReader:  services.NewMockUserReader(ctrl),
		userWriter:  services.NewMockUserWriter(ctrl),
		resetTokens: services.NewMockResetTokenStore(ctrl),
		emails:      services.NewMockEmailSender(ctrl),
	}
	svc := services.NewUserService(m.userReader, m.userWriter, m.resetTokens, m.emails, nil)
	return svc, m
}

func TestUserService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newUserService(ctrl)
	userID := uuid.New()

	oldHash, err := bcrypt.GenerateFromPassword([]byte("old-secret"), bcrypt.MinCost)
	assert.NoError(t, err)
	hash := string(oldHash)

	t.Run("user not found", func(t *testing.T) {
		m.userReader.EXPECT().GetByID(gomock.Any(), userID).Return(nil, nil)

		err := svc.ChangePassword(context.Background(), userID, "old-secret", "new-secret")
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		assert.Equal(t, "User not found.", apperr.MessageOf(err))
	})

	t.Run("old password mismatch", func(t *testing.T) {
		m.userReader.EXPECT().GetByID(gomock.Any(), userID).
			Return(&models.User{ID: userID, Email: "a@b.com", Password: &hash, EmailVerified: true}, nil)

		err := svc.ChangePassword(context.Background(), userID, "wrong", "new-secret")
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Equal(t, "Password does not match.", apperr.MessageOf(err))
	})

	t.Run("success stores a bcrypt hash of the new password", func(t *testing.T) {
		m.userReader.EXPECT().GetByID(gomock.Any(), userID).
			Return(&models.User{ID: userID, Email: "a@b.com", Password: &hash, EmailVerified: true}, nil)
		m.userWriter.EXPECT().
			UpdatePassword(gomock.Any(), userID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, stored string) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("new-secret")))
				return nil
			})

		err := svc.ChangePassword(context.Background(), userID, "old-secret", "new-secret")
		assert.NoError(t, err)
	})

	t.Run("no stored password skips the old password check", func(t *testing.T) {
		m.userReader.EXPECT().GetByID(gomock.Any(), userID).
			Return(&models.User{ID: userID, Email: "a@b.com", EmailVerified: true}, nil)
		m.userWriter.EXPECT().UpdatePassword(gomock.Any(), userID, gomock.Any()).Return(nil)

		err := svc.ChangePassword(context.Background(), userID, "", "new-secret")
		assert.NoError(t, err)
	})
}

func TestUserService_RequestPasswordReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newUserService(ctrl)
	userID := uuid.New()

	t.Run("unknown email reports success", func(t *testing.T) {
		m.userReader.EXPECT().GetByEmail(gomock.Any(), "a@b.com").Return(nil, nil)

		assert.NoError(t, svc.RequestPasswordReset(context.Background(), "a@b.com"))
	})

	t.Run("known email stores a token and sends a link", func(t *testing.T) {
		var storedToken string
		m.userReader.EXPECT().GetByEmail(gomock.Any(), "a@b.com").
			Return(&models.User{ID: userID, Email: "a@b.com", EmailVerified: true}, nil)
		m.resetTokens.EXPECT().
			Store(gomock.Any(), gomock.Any(), userID).
			DoAndReturn(func(_ context.Context, token string, _ uuid.UUID) error {
				storedToken = token
				return nil
			})
		m.emails.EXPECT().
			SendPasswordReset(gomock.Any(), "a@b.com", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, token string) error {
				assert.Equal(t, storedToken, token)
				return nil
			})

		assert.NoError(t, svc.RequestPasswordReset(context.Background(), "a@b.com"))
		assert.NotEmpty(t, storedToken)
	})

	t.Run("delivery failure is swallowed", func(t *testing.T) {
		m.userReader.EXPECT().GetByEmail(gomock.Any(), "a@b.com").
			Return(&models.User{ID: userID, Email: "a@b.com", EmailVerified: true}, nil)
		m.resetTokens.EXPECT().Store(gomock.Any(), gomock.Any(), userID).Return(nil)
		m.emails.EXPECT().SendPasswordReset(gomock.Any(), "a@b.com", gomock.Any()).
			Return(errors.New("smtp down"))

		assert.NoError(t, svc.RequestPasswordReset(context.Background(), "a@b.com"))
	})
}

func TestUserService_ResetPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newUserService(ctrl)
	userID := uuid.New()

	t.Run("unknown token", func(t *testing.T) {
		m.resetTokens.EXPECT().Get(gomock.Any(), "stale").Return(uuid.Nil, nil)

		err := svc.ResetPassword(context.Background(), "stale", "new-secret")
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Equal(t, "Invalid or expired reset token.", apperr.MessageOf(err))
	})

	t.Run("valid token updates the password and burns the token", func(t *testing.T) {
		m.resetTokens.EXPECT().Get(gomock.Any(), "fresh").Return(userID, nil)
		m.userWriter.EXPECT().
			UpdatePassword(gomock.Any(), userID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, stored string) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("new-secret")))
				return nil
			})
		m.resetTokens.EXPECT().Delete(gomock.Any(), "fresh").Return(nil)

		assert.NoError(t, svc.ResetPassword(context.Background(), "fresh", "new-secret"))
	})
}
