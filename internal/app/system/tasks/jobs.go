// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"github.com/dalemusser/gracehub/internal/app/system/viewcache"
	"go.uber.org/zap"
)

// LinkRepairer clears event links to teachings that no longer exist.
type LinkRepairer interface {
	RepairDanglingLinks(ctx context.Context) (int64, error)
}

// ResetTokenCleaner unsets password reset tokens that expired before now.
type ResetTokenCleaner interface {
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

// LoginPruner deletes login records older than a cutoff.
type LoginPruner interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// QuoteWarmer generates and caches today's quote.
type QuoteWarmer interface {
	WarmDailyQuote(ctx context.Context) error
}

// Sweeper drops idle rate-limit buckets.
type Sweeper interface {
	Sweep(idle time.Duration) int
}

// LinkRepairJob is the backstop for teaching deletes that unlinked events
// without a transaction and were interrupted. Repaired events drop the
// cached views that list them.
func LinkRepairJob(r LinkRepairer, views viewcache.Cache, logger *zap.Logger, schedule string) Job {
	return Job{
		Name:     "link-repair",
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			n, err := r.RepairDanglingLinks(ctx)
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("repaired dangling teaching links", zap.Int64("events", n))
				viewcache.Invalidate(ctx, views, logger,
					viewcache.PathPastorDashboard, viewcache.PathDashboard, viewcache.PathHome)
			}
			return nil
		},
	}
}

// ResetTokenCleanupJob removes expired reset tokens. Redemption already
// checks expiry; this keeps stale tokens from sitting in the collection.
func ResetTokenCleanupJob(c ResetTokenCleaner, logger *zap.Logger, now func() time.Time) Job {
	return Job{
		Name:     "reset-token-cleanup",
		Schedule: "@hourly",
		Run: func(ctx context.Context) error {
			n, err := c.ClearExpiredResetTokens(ctx, now())
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("cleared expired reset tokens", zap.Int64("count", n))
			}
			return nil
		},
	}
}

// LoginHistoryPruneJob keeps login records for retain.
func LoginHistoryPruneJob(p LoginPruner, retain time.Duration, logger *zap.Logger, now func() time.Time) Job {
	return Job{
		Name:     "login-history-prune",
		Schedule: "30 3 * * *",
		Run: func(ctx context.Context) error {
			n, err := p.DeleteBefore(ctx, now().Add(-retain))
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("pruned login records", zap.Int64("count", n))
			}
			return nil
		},
	}
}

// DailyQuoteJob warms the quote shortly after midnight.
func DailyQuoteJob(w QuoteWarmer) Job {
	return Job{
		Name:     "daily-quote",
		Schedule: "5 0 * * *",
		Timeout:  2 * time.Minute,
		Run:      w.WarmDailyQuote,
	}
}

// RateLimitSweepJob keeps limiter maps from growing without bound. name
// distinguishes the limiter in logs and job locks.
func RateLimitSweepJob(name string, s Sweeper, logger *zap.Logger) Job {
	return Job{
		Name:     "ratelimit-sweep-" + name,
		Schedule: "@every 10m",
		Local:    true,
		Run: func(ctx context.Context) error {
			if n := s.Sweep(10 * time.Minute); n > 0 {
				logger.Debug("swept idle rate-limit buckets", zap.String("limiter", name), zap.Int("count", n))
			}
			return nil
		},
	}
}
