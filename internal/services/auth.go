package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/noteshq/notes-api/internal/apperr"
	"github.com/noteshq/notes-api/internal/jwt"
	"github.com/noteshq/notes-api/internal/logger"
	"github.com/noteshq/notes-api/internal/mailer"
	"github.com/noteshq/notes-api/internal/models"
	"github.com/noteshq/notes-api/internal/otp"
	"github.com/segmentio/kafka-go"
	"golang.org/x/crypto/bcrypt"
)

// Token lifetimes. A verification token only proves a fresh sign-up and
// must never outlive the OTP by much.
const (
	SessionTokenTTL      = 24 * time.Hour
	VerificationTokenTTL = 5 * time.Minute
)

// UserReader defines read-only operations on users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// UserWriter defines write operations on users and their verification state.
type UserWriter interface {
	SaveWithVerification(ctx context.Context, email, passwordHash, otpHash string, otpExpiresAt time.Time) (uuid.UUID, error)
	Verify(ctx context.Context, userID uuid.UUID) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// VerificationReader reads pending verification records.
type VerificationReader interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserVerification, error)
}

// VerificationWriter replaces pending verification records.
type VerificationWriter interface {
	Upsert(ctx context.Context, userID uuid.UUID, otpHash string, otpExpiresAt time.Time) error
}

// TokenProvider issues and verifies signed tokens.
type TokenProvider interface {
	Generate(ctx context.Context, userID uuid.UUID, email string, ttl time.Duration) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// EmailSender delivers transactional emails.
type EmailSender interface {
	SendVerificationCode(ctx context.Context, to, code string) error
	SendPasswordReset(ctx context.Context, to, token string) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// SignUpResult is returned after sign-up and code resend: a short-lived
// verification token, never a full session.
type SignUpResult struct {
	VerificationToken string
	OTPExpiresAt      time.Time
}

// AuthResult is returned after login and successful email verification.
type AuthResult struct {
	Token string
	User  models.UserInfo
}

// AuthService orchestrates the sign-up, verification and login lifecycle.
type AuthService struct {
	userReader         UserReader
	userWriter         UserWriter
	verificationReader VerificationReader
	verificationWriter VerificationWriter
	tokens             TokenProvider
	emails             EmailSender
	kafkaWriter        KafkaWriter
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	userReader UserReader,
	userWriter UserWriter,
	verificationReader VerificationReader,
	verificationWriter VerificationWriter,
	tokens TokenProvider,
	emails EmailSender,
	kafkaWriter KafkaWriter,
) *AuthService {
	return &AuthService{
		userReader:         userReader,
		userWriter:         userWriter,
		verificationReader: verificationReader,
		verificationWriter: verificationWriter,
		tokens:             tokens,
		emails:             emails,
		kafkaWriter:        kafkaWriter,
	}
}

// SignUp registers an email or refreshes an unverified registration. Only
// a verified account blocks the attempt; repeating a pending sign-up
// simply regenerates the code.
func (svc *AuthService) SignUp(ctx context.Context, email, password string) (*SignUpResult, error) {
	user, err := svc.userReader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to look up user", "email", email, "error", err)
		return nil, apperr.Internal("Cannot sign up at the moment.", err)
	}
	if user != nil && user.EmailVerified {
		return nil, apperr.Conflict(conflictMessage(user))
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, apperr.Internal("Cannot sign up at the moment.", err)
	}

	code, err := otp.Generate()
	if err != nil {
		return nil, apperr.Internal("Cannot sign up at the moment.", err)
	}

	userID, err := svc.userWriter.SaveWithVerification(ctx, email, passwordHash, code.Hash, code.ExpiresAt)
	if err != nil {
		logger.Log.Errorw("failed to save user", "email", email, "error", err)
		return nil, apperr.Internal("Cannot sign up at the moment.", err)
	}

	if err := svc.sendCode(ctx, email, code.Text); err != nil {
		return nil, err
	}

	verificationToken, err := svc.tokens.Generate(ctx, userID, email, VerificationTokenTTL)
	if err != nil {
		return nil, apperr.Internal("Cannot sign up at the moment.", err)
	}

	publishAccountEvent(ctx, svc.kafkaWriter, models.EventUserSignedUp, userID, email)

	return &SignUpResult{
		VerificationToken: verificationToken,
		OTPExpiresAt:      code.ExpiresAt,
	}, nil
}

// VerifyEmail completes the sign-up: a valid verification token plus a
// matching unexpired code flip the account to verified and hand out a
// full session token.
func (svc *AuthService) VerifyEmail(ctx context.Context, verificationToken, code string) (*AuthResult, error) {
	claims, err := svc.tokens.GetClaims(ctx, verificationToken)
	if err != nil {
		return nil, apperr.Authentication("Invalid or expired verification token.")
	}

	user, err := svc.userReader.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperr.Internal("Cannot verify user at the moment.", err)
	}

	verification, err := svc.verificationReader.GetByUserID(ctx, claims.UserID)
	if err != nil {
		return nil, apperr.Internal("Cannot verify user at the moment.", err)
	}

	if user == nil || verification == nil {
		return nil, apperr.Conflict("Please sign up first.")
	}

	if otp.Expired(verification.OTPExpiresAt, time.Now()) {
		return nil, apperr.Validation("OTP is expired.")
	}

	if !otp.Match(code, verification.OTP) {
		return nil, apperr.Validation("OTP is incorrect.")
	}

	// Flag flip and verification delete happen in one transaction.
	if err := svc.userWriter.Verify(ctx, claims.UserID); err != nil {
		logger.Log.Errorw("failed to verify user", "user_id", claims.UserID, "error", err)
		return nil, apperr.Internal("Cannot verify user at the moment.", err)
	}

	token, err := svc.tokens.Generate(ctx, user.ID, user.Email, SessionTokenTTL)
	if err != nil {
		return nil, apperr.Internal("Cannot verify user at the moment.", err)
	}

	publishAccountEvent(ctx, svc.kafkaWriter, models.EventUserVerified, user.ID, user.Email)

	return &AuthResult{
		Token: token,
		User:  models.UserInfo{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt},
	}, nil
}

// ResendCode regenerates the one-time code for a pending registration.
// Concurrent resends are last-write-wins on the verification upsert; only
// the code from the latest successful write verifies.
func (svc *AuthService) ResendCode(ctx context.Context, email string) (*SignUpResult, error) {
	user, err := svc.userReader.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal("Cannot send verification code at the moment.", err)
	}
	if user == nil {
		return nil, apperr.Conflict("Please sign up first.")
	}
	if user.EmailVerified {
		return nil, apperr.Conflict(conflictMessage(user))
	}

	code, err := otp.Generate()
	if err != nil {
		return nil, apperr.Internal("Cannot send verification code at the moment.", err)
	}

	if err := svc.verificationWriter.Upsert(ctx, user.ID, code.Hash, code.ExpiresAt); err != nil {
		logger.Log.Errorw("failed to upsert verification", "user_id", user.ID, "error", err)
		return nil, apperr.Internal("Cannot send verification code at the moment.", err)
	}

	if err := svc.sendCode(ctx, email, code.Text); err != nil {
		return nil, err
	}

	verificationToken, err := svc.tokens.Generate(ctx, user.ID, email, VerificationTokenTTL)
	if err != nil {
		return nil, apperr.Internal("Cannot send verification code at the moment.", err)
	}

	return &SignUpResult{
		VerificationToken: verificationToken,
		OTPExpiresAt:      code.ExpiresAt,
	}, nil
}

// Login authenticates a verified account and returns a session token with
// a minimal user projection.
func (svc *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := svc.userReader.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal("Cannot log in at the moment.", err)
	}
	if user == nil {
		// Returning early here distinguishes "no such user" from "wrong
		// password" by timing. Accepted for this threat model.
		return nil, apperr.NotFound("User not found. Please sign up.")
	}

	if !user.EmailVerified {
		return nil, apperr.Validation("Email not verified. Verify your email before proceeding.")
	}

	if user.Password == nil {
		return nil, apperr.Validation("Invalid login method.")
	}

	if !passwordMatches(password, *user.Password) {
		return nil, apperr.Validation("Invalid credentials.")
	}

	token, err := svc.tokens.Generate(ctx, user.ID, user.Email, SessionTokenTTL)
	if err != nil {
		return nil, apperr.Internal("Cannot log in at the moment.", err)
	}

	return &AuthResult{
		Token: token,
		User:  models.UserInfo{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt},
	}, nil
}

// sendCode delivers the plaintext code, mapping the two delivery failure
// modes to distinct internal errors.
func (svc *AuthService) sendCode(ctx context.Context, email, code string) error {
	err := svc.emails.SendVerificationCode(ctx, email, code)
	if err == nil {
		return nil
	}

	logger.Log.Errorw("failed to send verification email", "email", email, "error", err)

	if errors.Is(err, mailer.ErrRecipientNotFound) {
		return apperr.Internal("Email not found. Please enter correct email.", err)
	}
	return apperr.Internal("Cannot send verification email at the moment.", err)
}

// publishAccountEvent publishes an account lifecycle event, fire-and-forget.
func publishAccountEvent(ctx context.Context, w KafkaWriter, eventType string, userID uuid.UUID, email string) {
	if w == nil {
		return
	}

	event := models.AccountEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		UserID:    userID.String(),
		Email:     email,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal account event", "type", eventType, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish account event", "type", eventType, "user_id", userID, "error", err)
	} else {
		logger.Log.Infow("account event published", "type", eventType, "user_id", userID)
	}
}

// conflictMessage hints at the right recovery path without leaking more
// than the account's login method.
func conflictMessage(user *models.User) string {
	if user.Password != nil {
		return "Account already exists. Please login."
	}
	return "Account already exists. Try login method."
}

// hashPassword creates a bcrypt hash with the fixed cost factor.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), otp.HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// passwordMatches reports whether candidate matches the stored hash. It
// returns false on mismatch or malformed hash and never panics.
func passwordMatches(candidate, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
