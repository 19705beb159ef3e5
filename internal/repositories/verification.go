package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/noteshq/notes-api/internal/logger"
	"github.com/noteshq/notes-api/internal/models"
)

type VerificationReadRepository struct {
	db *sqlx.DB
}

func NewVerificationReadRepository(db *sqlx.DB) *VerificationReadRepository {
	return &VerificationReadRepository{db: db}
}

// GetByUserID returns the pending verification record for the user, or
// nil when none exists.
func (r *VerificationReadRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserVerification, error) {
	const query = `
		SELECT id, user_id, otp, otp_expires_at, created_at, updated_at
		FROM user_verifications
		WHERE user_id = $1
	`

	var verification models.UserVerification
	err := r.db.GetContext(ctx, &verification, query, userID)

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

	return &verification, nil
}

type VerificationWriteRepository struct {
	db *sqlx.DB
}

func NewVerificationWriteRepository(db *sqlx.DB) *VerificationWriteRepository {
	return &VerificationWriteRepository{db: db}
}

// Upsert replaces the pending code for the user. The unique constraint on
// user_id makes concurrent resends last-write-wins.
func (r *VerificationWriteRepository) Upsert(ctx context.Context, userID uuid.UUID, otpHash string, otpExpiresAt time.Time) error {
	const query = `
		INSERT INTO user_verifications (user_id, otp, otp_expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET otp = EXCLUDED.otp,
		    otp_expires_at = EXCLUDED.otp_expires_at,
		    updated_at = NOW()
	`
	args := []any{userID, otpHash, otpExpiresAt}

	_, err := r.db.ExecContext(ctx, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, otpExpiresAt},
		"error", err,
	)

	return err
}
