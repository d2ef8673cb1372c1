// Package timeouts holds the deadlines used for store calls and outbound
// requests made while serving a GraceHub request.
//
//   - Ping: health checks
//   - Short: single-document reads and writes
//   - Medium: list queries and dashboard snapshots
//   - Long: multi-collection writes (event + teaching, teaching unlink)
//   - Upstream: calls to the Gemini and scripture APIs
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultPing     = 2 * time.Second
	DefaultShort    = 5 * time.Second
	DefaultMedium   = 10 * time.Second
	DefaultLong     = 30 * time.Second
	DefaultUpstream = 45 * time.Second
)

var (
	mu       sync.RWMutex
	ping     = DefaultPing
	short    = DefaultShort
	medium   = DefaultMedium
	long     = DefaultLong
	upstream = DefaultUpstream
)

func Ping() time.Duration     { return get(&ping) }
func Short() time.Duration    { return get(&short) }
func Medium() time.Duration   { return get(&medium) }
func Long() time.Duration     { return get(&long) }
func Upstream() time.Duration { return get(&upstream) }

func get(d *time.Duration) time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return *d
}

// Config holds timeout overrides. Zero values keep the current setting.
type Config struct {
	Ping     time.Duration
	Short    time.Duration
	Medium   time.Duration
	Long     time.Duration
	Upstream time.Duration
}

// Configure applies overrides. Call during startup, before routes are built.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	set := func(dst *time.Duration, v time.Duration) {
		if v > 0 {
			*dst = v
		}
	}
	set(&ping, cfg.Ping)
	set(&short, cfg.Short)
	set(&medium, cfg.Medium)
	set(&long, cfg.Long)
	set(&upstream, cfg.Upstream)
}

// Reset restores the defaults. Used by tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping, short, medium, long, upstream = DefaultPing, DefaultShort, DefaultMedium, DefaultLong, DefaultUpstream
}

// Current reports the active configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Short: short, Medium: medium, Long: long, Upstream: upstream}
}

// WithTimeout wraps context.WithTimeout and logs a warning from the returned
// cancel func when the deadline was hit.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "create event")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
