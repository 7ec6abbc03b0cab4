package locks

import (
	"context"
	"fmt"
	"time"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`

// RedisClient is the subset of go-redis used for locking
type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisLocker implements domain.Locker with SET NX PX and a compare-and-delete release
type RedisLocker struct {
	client RedisClient
	prefix string
	ttl    time.Duration
}

// NewRedisLocker creates a locker whose locks expire after ttl
func NewRedisLocker(client RedisClient, prefix string, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, prefix: prefix, ttl: ttl}
}

// Obtain implements domain.Locker
func (l *RedisLocker) Obtain(ctx context.Context, key string) (func(context.Context) error, error) {
	lockKey := l.prefix + key
	owner := uuid.NewString()

	ok, err := l.client.SetNX(ctx, lockKey, owner, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !ok {
		return nil, domain.ErrLockNotAcquired
	}

	release := func(ctx context.Context) error {
		n, err := l.client.Eval(ctx, releaseScript, []string{lockKey}, owner).Int64()
		if err != nil {
			return fmt.Errorf("failed to release lock: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("lock %s expired before release", lockKey)
		}
		return nil
	}
	return release, nil
}

// NoopLocker always succeeds. It is used when no Redis is configured.
type NoopLocker struct{}

// Obtain implements domain.Locker
func (NoopLocker) Obtain(ctx context.Context, key string) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}
