package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("Cannot sign up at the moment.", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("bad input"), KindValidation},
		{"authentication", Authentication("unauthorized"), KindAuthentication},
		{"conflict", Conflict("already exists"), KindConflict},
		{"not found", NotFound("missing"), KindNotFound},
		{"internal", Internal("boom", nil), KindInternal},
		{"wrapped", fmt.Errorf("context: %w", Conflict("already exists")), KindConflict},
		{"plain error coerces to internal", errors.New("db error"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "already exists", MessageOf(Conflict("already exists")))

	// Plain errors must never leak detail to clients.
	assert.Equal(t, "Internal error", MessageOf(errors.New("pq: relation does not exist")))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
