package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/noteshq/notes-api/internal/logger"
	"github.com/noteshq/notes-api/internal/models"
)

// ErrNoRowsAffected is returned by guarded writes that matched no rows.
var ErrNoRowsAffected = errors.New("no rows affected")

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByEmail returns the user with the given email, or nil when absent.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `
		SELECT id, email, password, email_verified, created_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, email)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{email},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByID returns the user with the given id, or nil when absent.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	const query = `
		SELECT id, email, password, email_verified, created_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// SaveWithVerification upserts an unverified user row together with its
// verification record in one transaction. On email conflict the password
// is overwritten; on user_id conflict the pending code is replaced. The
// unique constraints arbitrate concurrent sign-ups for the same email.
func (r *UserWriteRepository) SaveWithVerification(
	ctx context.Context,
	email, passwordHash, otpHash string,
	otpExpiresAt time.Time,
) (uuid.UUID, error) {
	const upsertUser = `
		INSERT INTO users (email, password)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE
		SET password = EXCLUDED.password
		RETURNING id
	`
	const upsertVerification = `
		INSERT INTO user_verifications (user_id, otp, otp_expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET otp = EXCLUDED.otp,
		    otp_expires_at = EXCLUDED.otp_expires_at,
		    updated_at = NOW()
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var userID uuid.UUID
	if err := tx.GetContext(ctx, &userID, upsertUser, email, passwordHash); err != nil {
		logger.Log.Errorw("failed to upsert user", "email", email, "error", err)
		return uuid.Nil, err
	}

	if _, err := tx.ExecContext(ctx, upsertVerification, userID, otpHash, otpExpiresAt); err != nil {
		logger.Log.Errorw("failed to upsert verification", "user_id", userID, "error", err)
		return uuid.Nil, err
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Log.Infow("user saved with verification", "user_id", userID, "email", email)
	return userID, nil
}

// Verify flips the email_verified flag and deletes the pending
// verification record in one transaction. Both happen or neither does.
func (r *UserWriteRepository) Verify(ctx context.Context, userID uuid.UUID) error {
	const markVerified = `
		UPDATE users
		SET email_verified = TRUE
		WHERE id = $1
	`
	const deleteVerification = `
		DELETE FROM user_verifications
		WHERE user_id = $1
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, markVerified, userID)
	if err != nil {
		logger.Log.Errorw("failed to mark user verified", "user_id", userID, "error", err)
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNoRowsAffected)
	}

	if _, err := tx.ExecContext(ctx, deleteVerification, userID); err != nil {
		logger.Log.Errorw("failed to delete verification", "user_id", userID, "error", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Log.Infow("user verified", "user_id", userID)
	return nil
}

// UpdatePassword persists a new password hash for the user.
func (r *UserWriteRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	const query = `
		UPDATE users
		SET password = $2
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, userID, passwordHash)

	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNoRowsAffected)
	}
	return nil
}
