package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// TTL is how long a generated code stays valid.
const TTL = 5*time.Minute + 30*time.Second

// HashCost is the bcrypt cost used for codes and passwords alike.
const HashCost = 12

// Code is a freshly generated one-time code. Text is transmitted once via
// email and never persisted; only Hash is stored.
type Code struct {
	Text      string
	Hash      string
	ExpiresAt time.Time
}

// Generate produces a uniform random 6-digit code in [100000, 999999]
// together with its bcrypt hash and expiry.
func Generate() (*Code, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp: %w", err)
	}
	text := fmt.Sprintf("%06d", n.Int64()+100000)

	hash, err := bcrypt.GenerateFromPassword([]byte(text), HashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash otp: %w", err)
	}

	return &Code{
		Text:      text,
		Hash:      string(hash),
		ExpiresAt: time.Now().Add(TTL),
	}, nil
}

// Match reports whether candidate matches the stored hash. It returns
// false on mismatch or malformed hash and never panics.
func Match(candidate, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}

// Expired reports whether the code expiry lies in the past.
func Expired(expiresAt, now time.Time) bool {
	return now.After(expiresAt)
}
