// Package viewcache stores JSON snapshots of read views (dashboards, the
// daily quote, scripture passages) and drops them when the data behind
// them changes.
package viewcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// View paths invalidated by write actions.
const (
	PathHome            = "/"
	PathDashboard       = "/dashboard"
	PathPastorDashboard = "/pastor/dashboard"
	PathPastorMembers   = "/pastor/dashboard/members"
	PathPastorCreations = "/pastor/dashboard/creations"
)

// Cache is the snapshot store. Implementations must be safe for concurrent use.
type Cache interface {
	// Get decodes the snapshot at key into dst and reports whether it existed.
	Get(ctx context.Context, key string, dst any) (bool, error)
	// Set stores v at key for ttl (0 means no expiry).
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	// Invalidate removes the snapshots at keys.
	Invalidate(ctx context.Context, keys ...string) error
}

const keyPrefix = "gracehub:view:"

// cmdable is the slice of the go-redis API this package uses.
type cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Redis is a Cache backed by Redis.
type Redis struct {
	rdb cmdable
}

// NewRedis wraps a go-redis client (or cluster/ring client).
func NewRedis(rdb cmdable) *Redis { return &Redis{rdb: rdb} }

func (c *Redis) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("viewcache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// A snapshot we cannot read is as good as missing.
		return false, nil
	}
	return true, nil
}

func (c *Redis) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("viewcache encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("viewcache set %s: %w", key, err)
	}
	return nil
}

func (c *Redis) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = keyPrefix + k
	}
	if err := c.rdb.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("viewcache invalidate: %w", err)
	}
	return nil
}

// Noop never stores anything. Used when Redis is not configured.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Invalidate(context.Context, ...string) error           { return nil }

// Invalidate drops paths and logs, rather than returns, any failure. A
// stale view must never fail the mutation that caused it.
func Invalidate(ctx context.Context, c Cache, log *zap.Logger, paths ...string) {
	if c == nil {
		return
	}
	if err := c.Invalidate(ctx, paths...); err != nil {
		log.Warn("view invalidation failed", zap.Strings("paths", paths), zap.Error(err))
	}
}
