package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"lms-quiz/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisCacheAdapter_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	key := "lmsquiz:quizgen:generation:abc"

	t.Run("Success", func(t *testing.T) {
		mock.ExpectGet(key).SetVal(`[{"content":"q"}]`)
		val, err := adapter.Get(ctx, key)
		assert.NoError(t, err)
		assert.Equal(t, `[{"content":"q"}]`, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CacheMiss", func(t *testing.T) {
		mock.ExpectGet(key).SetErr(redis.Nil)
		val, err := adapter.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("some redis error")
		mock.ExpectGet(key).SetErr(redisErr)
		val, err := adapter.Get(ctx, key)
		assert.ErrorIs(t, err, redisErr)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_SetDeletePing(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	t.Run("Set", func(t *testing.T) {
		mock.ExpectSet("k", "v", time.Hour).SetVal("OK")
		assert.NoError(t, adapter.Set(ctx, "k", "v", time.Hour))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SetError", func(t *testing.T) {
		mock.ExpectSet("k", "v", time.Hour).SetErr(errors.New("OOM"))
		assert.Error(t, adapter.Set(ctx, "k", "v", time.Hour))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete", func(t *testing.T) {
		mock.ExpectDel("k").SetVal(1)
		assert.NoError(t, adapter.Delete(ctx, "k"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ping", func(t *testing.T) {
		mock.ExpectPing().SetVal("PONG")
		assert.NoError(t, adapter.Ping(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
