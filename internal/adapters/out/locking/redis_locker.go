package locking

import (
	"context"
	"sync"
	"time"

	"parceltrack/internal/core/ports"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// releaseScript deletes the key only if it still holds our token, so a lock
// that expired and was taken by someone else is never released by us.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLockerConfig struct {
	// Prefix is prepended to every key, e.g. "parceltrack:lock:".
	Prefix string

	// TTL bounds how long a crashed holder can keep a key. It must exceed
	// the longest unit of work.
	TTL time.Duration

	// RetryInterval is the pause between SET NX attempts while waiting.
	RetryInterval time.Duration
}

func DefaultRedisLockerConfig() RedisLockerConfig {
	return RedisLockerConfig{
		Prefix:        "parceltrack:lock:",
		TTL:           30 * time.Second,
		RetryInterval: 25 * time.Millisecond,
	}
}

// RedisLocker takes logical locks with SET NX PX and a random token.
type RedisLocker struct {
	client goredis.UniversalClient
	config RedisLockerConfig
	logger *zap.Logger
}

func NewRedisLocker(client goredis.UniversalClient, config RedisLockerConfig, logger *zap.Logger) *RedisLocker {
	defaults := DefaultRedisLockerConfig()
	if config.TTL <= 0 {
		config.TTL = defaults.TTL
	}
	if config.RetryInterval <= 0 {
		config.RetryInterval = defaults.RetryInterval
	}
	return &RedisLocker{
		client: client,
		config: config,
		logger: logger.Named("redis-locker"),
	}
}

// Lock polls until the key is taken or ctx is done. Redis errors abort the
// wait immediately.
func (l *RedisLocker) Lock(ctx context.Context, key string) (ports.Unlock, error) {
	redisKey := l.config.Prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(l.config.RetryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.config.TTL).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, lockError(key, ctxErr)
			}
			return nil, errors.Wrapf(err, "redis lock %s", key)
		}
		if ok {
			return l.unlockFunc(redisKey, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, lockError(key, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) unlockFunc(redisKey, token string) ports.Unlock {
	var once sync.Once
	return func() {
		once.Do(func() {
			// The caller's context may already be cancelled; release anyway.
			ctx, cancel := context.WithTimeout(context.Background(), l.config.TTL)
			defer cancel()

			released, err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Int64()
			if err != nil {
				l.logger.Warn("failed to release lock", zap.String("key", redisKey), zap.Error(err))
				return
			}
			if released == 0 {
				l.logger.Warn("lock expired before release", zap.String("key", redisKey))
			}
		})
	}
}
