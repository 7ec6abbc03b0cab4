package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/infrastructure/locks"
	"github.com/redis/go-redis/v9"
)

// MockRedisClient implements locks.RedisClient for testing lock behaviour without Redis
type MockRedisClient struct {
	SetNXFunc func(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	EvalFunc  func(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd

	mu        sync.Mutex
	SetNXKeys []string
	EvalKeys  []string
}

var _ locks.RedisClient = (*MockRedisClient)(nil)

// NewMockRedisClient creates a mock whose locks are always granted and released
func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{}
}

// SetNX mocks Redis SET NX
func (m *MockRedisClient) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	m.SetNXKeys = append(m.SetNXKeys, key)
	m.mu.Unlock()

	if m.SetNXFunc != nil {
		return m.SetNXFunc(ctx, key, value, expiration)
	}
	cmd := redis.NewBoolCmd(ctx, "set", key, value, "nx")
	cmd.SetVal(true)
	return cmd
}

// Eval mocks Redis EVAL for the release script
func (m *MockRedisClient) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	m.mu.Lock()
	m.EvalKeys = append(m.EvalKeys, keys...)
	m.mu.Unlock()

	if m.EvalFunc != nil {
		return m.EvalFunc(ctx, script, keys, args...)
	}
	cmd := redis.NewCmd(ctx, "eval", script)
	cmd.SetVal(int64(1))
	return cmd
}

// LockDenied makes every SetNX report the key as already held
func (m *MockRedisClient) LockDenied() {
	m.SetNXFunc = func(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
		cmd := redis.NewBoolCmd(ctx, "set", key, value, "nx")
		cmd.SetVal(false)
		return cmd
	}
}
