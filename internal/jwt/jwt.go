package jwt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token issuer and audience, fixed for this deployment.
const (
	Issuer   = "notes_app_api"
	Audience = "notes_web_app"
)

var (
	// ErrNoSecret is returned when no signing secret is configured. The
	// secret is checked lazily at first use and must never fall back to
	// a default.
	ErrNoSecret = errors.New("jwt signing secret is not configured")

	// ErrInvalidToken is returned for any token that fails verification:
	// bad signature, expired, wrong audience or issuer, or malformed.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the application payload embedded in every token.
type Claims struct {
	UserID uuid.UUID
	Email  string
}

// JWT issues and verifies signed HS256 tokens.
type JWT struct {
	SecretKey string // Secret key for signing tokens
}

// New creates a new JWT instance.
func New(secretKey string) *JWT {
	return &JWT{SecretKey: secretKey}
}

// Generate creates a signed token binding the user identity, with
// subject, issuer, audience and temporal fields. ttl controls expiry.
func (j *JWT) Generate(ctx context.Context, userID uuid.UUID, email string, ttl time.Duration) (string, error) {
	if j.SecretKey == "" {
		return "", ErrNoSecret
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"email":   email,
		"sub":     userID.String(),
		"iss":     Issuer,
		"aud":     Audience,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.SecretKey))
}

// GetClaims parses and verifies the token string and returns its claims.
// Any verification failure is reported as ErrInvalidToken.
func (j *JWT) GetClaims(ctx context.Context, tokenString string) (*Claims, error) {
	if j.SecretKey == "" {
		return nil, ErrNoSecret
	}

	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(j.SecretKey), nil
		},
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userIDStr, ok := mapClaims["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: user_id not found in token", ErrInvalidToken)
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user_id format", ErrInvalidToken)
	}

	email, ok := mapClaims["email"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: email not found in token", ErrInvalidToken)
	}

	return &Claims{UserID: userID, Email: email}, nil
}

// GetTokenFromRequest extracts the token string from the Authorization header.
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}
