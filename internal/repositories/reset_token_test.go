package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestResetTokenRepository(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	assert.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()

	err = rdb.Ping(ctx).Err()
	assert.NoError(t, err)

	repo := NewResetTokenRepository(rdb, 2*time.Second)
	userID := uuid.New()

	t.Run("store and resolve", func(t *testing.T) {
		err := repo.Store(ctx, "token-1", userID)
		assert.NoError(t, err)

		got, err := repo.Get(ctx, "token-1")
		assert.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("unknown token resolves to nil id", func(t *testing.T) {
		got, err := repo.Get(ctx, "never-issued")
		assert.NoError(t, err)
		assert.Equal(t, uuid.Nil, got)
	})

	t.Run("deleted token cannot be replayed", func(t *testing.T) {
		err := repo.Store(ctx, "token-2", userID)
		assert.NoError(t, err)

		err = repo.Delete(ctx, "token-2")
		assert.NoError(t, err)

		got, err := repo.Get(ctx, "token-2")
		assert.NoError(t, err)
		assert.Equal(t, uuid.Nil, got)
	})

	t.Run("token expires", func(t *testing.T) {
		err := repo.Store(ctx, "token-3", userID)
		assert.NoError(t, err)

		time.Sleep(3 * time.Second)

		got, err := repo.Get(ctx, "token-3")
		assert.NoError(t, err)
		assert.Equal(t, uuid.Nil, got)
	})
}
