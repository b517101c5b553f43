package repository_test

import (
	"authorization-server/config"
	"authorization-server/internal/model"
	"authorization-server/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCacheRepository(t *testing.T) (*repository.CacheRepository, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	return repository.NewCacheRepository(&config.RedisClient{Client: client}, time.Minute), server
}

// 1. Сохраненный пользователь читается обратно
func TestCacheRepository_SetAndGet(t *testing.T) {
	cache, _ := newTestCacheRepository(t)
	ctx := context.Background()

	user := &model.User{UUID: "user-uuid-1", Email: "a@x.com"}
	require.NoError(t, cache.SetUser(ctx, user))

	cached, err := cache.GetUser(ctx, "user-uuid-1")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, user.UUID, cached.UUID)
	assert.Equal(t, user.Email, cached.Email)
}

// 2. Промах кэша — (nil, nil), не ошибка
func TestCacheRepository_Miss(t *testing.T) {
	cache, _ := newTestCacheRepository(t)

	cached, err := cache.GetUser(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

// 3. Удаление делает следующий запрос промахом
func TestCacheRepository_Delete(t *testing.T) {
	cache, _ := newTestCacheRepository(t)
	ctx := context.Background()

	require.NoError(t, cache.SetUser(ctx, &model.User{UUID: "user-uuid-1", Email: "a@x.com"}))
	require.NoError(t, cache.DeleteUser(ctx, "user-uuid-1"))

	cached, err := cache.GetUser(ctx, "user-uuid-1")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

// 4. Запись живет не дольше TTL
func TestCacheRepository_TTL(t *testing.T) {
	cache, server := newTestCacheRepository(t)
	ctx := context.Background()

	require.NoError(t, cache.SetUser(ctx, &model.User{UUID: "user-uuid-1", Email: "a@x.com"}))

	server.FastForward(2 * time.Minute)

	cached, err := cache.GetUser(ctx, "user-uuid-1")
	require.NoError(t, err)
	assert.Nil(t, cached)
}
