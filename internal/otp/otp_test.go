package otp

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	before := time.Now()

	code, err := Generate()
	assert.NoError(t, err)
	assert.Len(t, code.Text, 6)

	n, err := strconv.Atoi(code.Text)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, n, 100000)
	assert.LessOrEqual(t, n, 999999)

	// Only the hash is persisted; it must verify against the plaintext.
	assert.NotEqual(t, code.Text, code.Hash)
	assert.True(t, Match(code.Text, code.Hash))

	assert.WithinDuration(t, before.Add(TTL), code.ExpiresAt, 2*time.Second)
}

func TestMatch_Mismatch(t *testing.T) {
	code, err := Generate()
	assert.NoError(t, err)

	assert.False(t, Match("000000", code.Hash))
}

func TestMatch_MalformedHash(t *testing.T) {
	// Must return false, never panic.
	assert.NotPanics(t, func() {
		assert.False(t, Match("123456", "not-a-bcrypt-hash"))
	})
}

func TestExpired(t *testing.T) {
	now := time.Now()

	assert.False(t, Expired(now.Add(time.Minute), now))
	assert.True(t, Expired(now.Add(-time.Second), now))
}
