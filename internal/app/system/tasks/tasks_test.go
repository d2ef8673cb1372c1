package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dalemusser/gracehub/internal/app/system/viewcache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepairer struct {
	n   int64
	err error
}

func (f fakeRepairer) RepairDanglingLinks(context.Context) (int64, error) { return f.n, f.err }

type fakeCleaner struct{ at time.Time }

func (f *fakeCleaner) ClearExpiredResetTokens(_ context.Context, now time.Time) (int64, error) {
	f.at = now
	return 2, nil
}

func TestScheduler_AddRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(zap.NewNop(), nil, nil)
	err := s.Add(Job{Name: "bad", Schedule: "not a schedule", Run: func(context.Context) error { return nil }})
	assert.Error(t, err)
}

func TestScheduler_RunNow(t *testing.T) {
	s := NewScheduler(zap.NewNop(), nil, nil)
	var calls int32
	job := Job{Name: "count", Schedule: "@hourly", Run: func(context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	}}

	s.RunNow(context.Background(), job)
	s.RunNow(context.Background(), job)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestScheduler_RunNowSkipsWhenLocked(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	lock := NewRedisLock(rdb)
	other := NewRedisLock(rdb)
	ok, err := other.Acquire(context.Background(), "link-repair", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	s := NewScheduler(zap.NewNop(), lock, nil)
	ran := false
	s.RunNow(context.Background(), Job{Name: "link-repair", Run: func(context.Context) error {
		ran = true
		return nil
	}})
	assert.False(t, ran, "job must not run while another instance holds the lock")

	require.NoError(t, other.Release(context.Background(), "link-repair"))
	s.RunNow(context.Background(), Job{Name: "link-repair", Run: func(context.Context) error {
		ran = true
		return nil
	}})
	assert.True(t, ran)
}

func TestRedisLock_ReleaseOnlyOwn(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	a := NewRedisLock(rdb)
	b := NewRedisLock(rdb)

	ok, err := a.Acquire(ctx, "job", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, b.Release(ctx, "job"))
	assert.True(t, mr.Exists(lockKey("job")), "b never held the lock")

	require.NoError(t, a.Release(ctx, "job"))
	assert.False(t, mr.Exists(lockKey("job")))
}

func TestLinkRepairJob_PropagatesError(t *testing.T) {
	job := LinkRepairJob(fakeRepairer{err: errors.New("boom")}, viewcache.Noop{}, zap.NewNop(), "@hourly")
	assert.Error(t, job.Run(context.Background()))

	job = LinkRepairJob(fakeRepairer{n: 3}, viewcache.Noop{}, zap.NewNop(), "@hourly")
	assert.NoError(t, job.Run(context.Background()))
}

func TestLinkRepairJob_ClearsEventViews(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	views := viewcache.NewRedis(rdb)
	ctx := context.Background()

	seed := func() {
		for _, p := range []string{viewcache.PathHome, viewcache.PathDashboard, viewcache.PathPastorDashboard} {
			require.NoError(t, views.Set(ctx, p, "cached", time.Hour))
		}
	}

	seed()
	require.NoError(t, LinkRepairJob(fakeRepairer{n: 0}, views, zap.NewNop(), "@hourly").Run(ctx))
	assert.Len(t, mr.Keys(), 3, "nothing repaired, nothing cleared")

	require.NoError(t, LinkRepairJob(fakeRepairer{n: 2}, views, zap.NewNop(), "@hourly").Run(ctx))
	assert.Empty(t, mr.Keys())
}

func TestResetTokenCleanupJob_UsesClock(t *testing.T) {
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	c := &fakeCleaner{}
	job := ResetTokenCleanupJob(c, zap.NewNop(), func() time.Time { return at })

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, at, c.at)
}

type fakePruner struct{ cutoff time.Time }

func (f *fakePruner) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return 5, nil
}

func TestLoginHistoryPruneJob_Cutoff(t *testing.T) {
	now := time.Date(2026, 10, 19, 3, 30, 0, 0, time.UTC)
	p := &fakePruner{}
	job := LoginHistoryPruneJob(p, 90*24*time.Hour, zap.NewNop(), func() time.Time { return now })

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, now.AddDate(0, 0, -90), p.cutoff)
}

type fakeSweeper struct{ idle time.Duration }

func (f *fakeSweeper) Sweep(idle time.Duration) int {
	f.idle = idle
	return 1
}

func TestRateLimitSweepJob_Name(t *testing.T) {
	s := &fakeSweeper{}
	job := RateLimitSweepJob("login", s, zap.NewNop())

	assert.Equal(t, "ratelimit-sweep-login", job.Name)
	assert.True(t, job.Local)
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 10*time.Minute, s.idle)
}

func TestScheduler_LocalJobIgnoresSharedLock(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	// Another instance holds the shared lock for the same job name.
	other := NewRedisLock(rdb)
	ok, err := other.Acquire(ctx, "ratelimit-sweep-login", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	s := NewScheduler(zap.NewNop(), NewRedisLock(rdb), nil)
	sw := &fakeSweeper{}
	s.RunNow(ctx, RateLimitSweepJob("login", sw, zap.NewNop()))
	assert.Equal(t, 10*time.Minute, sw.idle, "each instance sweeps its own limiters")
	assert.True(t, mr.Exists(lockKey("ratelimit-sweep-login")), "shared lock left alone")
}
