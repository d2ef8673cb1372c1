// internal/app/system/tasks/lock.go
package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker grants exclusive runs of a named job.
type Locker interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, name string) error
}

type redisCmdable interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisLock is a SETNX + TTL lock. Release only deletes a key this process owns.
type RedisLock struct {
	rdb    redisCmdable
	mu     sync.Mutex
	owners map[string]string
}

// NewRedisLock builds a lock on rdb.
func NewRedisLock(rdb redisCmdable) *RedisLock {
	return &RedisLock{rdb: rdb, owners: map[string]string{}}
}

func lockKey(name string) string { return "gracehub:joblock:" + name }

func (l *RedisLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	owner := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, lockKey(name), owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("setnx: %w", err)
	}
	if ok {
		l.mu.Lock()
		l.owners[name] = owner
		l.mu.Unlock()
	}
	return ok, nil
}

func (l *RedisLock) Release(ctx context.Context, name string) error {
	l.mu.Lock()
	owner, ok := l.owners[name]
	delete(l.owners, name)
	l.mu.Unlock()
	if !ok {
		return nil
	}

	current, err := l.rdb.Get(ctx, lockKey(name)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read lock owner: %w", err)
	}
	if current != owner {
		return nil
	}
	return l.rdb.Del(ctx, lockKey(name)).Err()
}

// localLock is used without Redis. It only prevents overlapping runs of the
// same job within this process.
type localLock struct{}

var running sync.Map

func (localLock) Acquire(_ context.Context, name string, _ time.Duration) (bool, error) {
	_, loaded := running.LoadOrStore(name, struct{}{})
	return !loaded, nil
}

func (localLock) Release(_ context.Context, name string) error {
	running.Delete(name)
	return nil
}
