package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/noteshq/notes-api/internal/logger"
	"github.com/redis/go-redis/v9"
)

const resetTokenPrefix = "password_reset:"

// ResetTokenRepository stores single-use password reset tokens in Redis
// with a TTL. A token maps to the user it was issued for.
type ResetTokenRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResetTokenRepository creates a repository with the given token TTL.
func NewResetTokenRepository(client *redis.Client, ttl time.Duration) *ResetTokenRepository {
	return &ResetTokenRepository{client: client, ttl: ttl}
}

// Store saves the token for the user. Expiry is enforced by Redis.
func (r *ResetTokenRepository) Store(ctx context.Context, token string, userID uuid.UUID) error {
	key := resetTokenPrefix + token
	err := r.client.Set(ctx, key, userID.String(), r.ttl).Err()

	logger.Log.Infow(
		"key", key,
		"user_id", userID,
		"error", err,
	)

	return err
}

// Get resolves the token to a user id. An unknown or expired token
// returns uuid.Nil with no error.
func (r *ResetTokenRepository) Get(ctx context.Context, token string) (uuid.UUID, error) {
	key := resetTokenPrefix + token

	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to get reset token", "key", key, "error", err)
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		logger.Log.Errorw("malformed reset token value", "key", key, "value", val, "error", err)
		return uuid.Nil, err
	}

	return userID, nil
}

// Delete removes a used token so it cannot be replayed.
func (r *ResetTokenRepository) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, resetTokenPrefix+token).Err()
}
