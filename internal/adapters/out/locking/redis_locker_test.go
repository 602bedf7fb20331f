package locking_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/adapters/out/locking"
	"parceltrack/internal/core/ports"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRedisLocker(t *testing.T, ttl time.Duration) (*locking.RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	locker := locking.NewRedisLocker(client, locking.RedisLockerConfig{
		Prefix:        "test:",
		TTL:           ttl,
		RetryInterval: 5 * time.Millisecond,
	}, zap.NewNop())
	return locker, mr
}

func TestRedisLocker_Lock(t *testing.T) {
	ctx := context.Background()

	t.Run("should store a token with a ttl and delete it on unlock", func(t *testing.T) {
		locker, mr := newRedisLocker(t, time.Minute)

		unlock, err := locker.Lock(ctx, "delivery:1")
		require.NoError(t, err)
		assert.True(t, mr.Exists("test:delivery:1"))
		assert.Equal(t, time.Minute, mr.TTL("test:delivery:1"))

		unlock()
		assert.False(t, mr.Exists("test:delivery:1"))
	})

	t.Run("should wait for the holder", func(t *testing.T) {
		locker, _ := newRedisLocker(t, time.Minute)

		unlock, err := locker.Lock(ctx, "delivery:1")
		require.NoError(t, err)

		acquired := make(chan ports.Unlock)
		go func() {
			next, lockErr := locker.Lock(ctx, "delivery:1")
			assert.NoError(t, lockErr)
			acquired <- next
		}()

		select {
		case <-acquired:
			t.Fatal("second holder got the lock while the first still held it")
		case <-time.After(30 * time.Millisecond):
		}

		unlock()
		next := <-acquired
		next()
	})

	t.Run("should give up when the context expires", func(t *testing.T) {
		locker, _ := newRedisLocker(t, time.Minute)

		unlock, err := locker.Lock(ctx, "vehicle:1")
		require.NoError(t, err)
		defer unlock()

		timeout, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		_, err = locker.Lock(timeout, "vehicle:1")
		require.ErrorIs(t, err, ports.ErrLockNotAcquired)
	})

	t.Run("should not release a lock taken over after expiry", func(t *testing.T) {
		locker, mr := newRedisLocker(t, time.Second)

		stale, err := locker.Lock(ctx, "delivery:2")
		require.NoError(t, err)
		mr.FastForward(2 * time.Second)

		fresh, err := locker.Lock(ctx, "delivery:2")
		require.NoError(t, err)

		stale()
		assert.True(t, mr.Exists("test:delivery:2"), "the new holder keeps its lock")

		fresh()
		assert.False(t, mr.Exists("test:delivery:2"))
	})

	t.Run("should report an unreachable redis", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		addr := mr.Addr()
		mr.Close()

		client := goredis.NewClient(&goredis.Options{Addr: addr, MaxRetries: -1})
		defer client.Close()
		locker := locking.NewRedisLocker(client, locking.DefaultRedisLockerConfig(), zap.NewNop())

		_, err = locker.Lock(ctx, "delivery:3")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ports.ErrLockNotAcquired)
	})
}
