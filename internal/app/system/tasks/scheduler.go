// internal/app/system/tasks/scheduler.go
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/gracehub/internal/app/system/metrics"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is one scheduled unit of background work.
type Job struct {
	Name     string
	Schedule string // standard 5-field cron spec or descriptor (@hourly, @every 10m)
	Timeout  time.Duration
	Run      func(ctx context.Context) error

	// Local jobs touch only this process's state, so every instance runs
	// them and they never take the shared lock.
	Local bool
}

// Scheduler runs Jobs on their cron schedules. When several instances share
// a Redis, the Locker keeps each run to one instance.
type Scheduler struct {
	c       *cron.Cron
	log     *zap.Logger
	lock    Locker
	metrics *metrics.Metrics
}

// NewScheduler builds a scheduler. lock may be nil (single instance); m may be nil.
func NewScheduler(logger *zap.Logger, lock Locker, m *metrics.Metrics) *Scheduler {
	if lock == nil {
		lock = localLock{}
	}
	return &Scheduler{
		c:       cron.New(cron.WithChain(cron.Recover(cronLogger{logger}))),
		log:     logger,
		lock:    lock,
		metrics: m,
	}
}

// Add registers job. Returns an error for an unparsable schedule.
func (s *Scheduler) Add(job Job) error {
	if _, err := s.c.AddFunc(job.Schedule, func() { s.RunNow(context.Background(), job) }); err != nil {
		return fmt.Errorf("schedule %s (%q): %w", job.Name, job.Schedule, err)
	}
	s.log.Info("job scheduled", zap.String("job", job.Name), zap.String("schedule", job.Schedule))
	return nil
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.c.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(s.c.Entries())))
}

// Stop stops the scheduler and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.c.Stop().Done()
	select {
	case <-done:
		s.log.Info("scheduler stopped")
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out; jobs still running")
	}
}

// RunNow executes job once under the lock with logging and metrics.
func (s *Scheduler) RunNow(parent context.Context, job Job) {
	timeout := job.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	log := s.log.With(zap.String("job", job.Name))

	lock := s.lock
	if job.Local {
		lock = localLock{}
	}

	ok, err := lock.Acquire(ctx, job.Name, timeout)
	if err != nil {
		log.Warn("job lock failed", zap.Error(err))
		return
	}
	if !ok {
		log.Debug("job running elsewhere; skipping")
		return
	}
	defer func() {
		if err := lock.Release(context.Background(), job.Name); err != nil {
			log.Warn("job lock release failed", zap.Error(err))
		}
	}()

	start := time.Now()
	err = job.Run(ctx)
	took := time.Since(start)
	s.metrics.Job(job.Name, took, err)
	if err != nil {
		log.Error("job failed", zap.Duration("took", took), zap.Error(err))
		return
	}
	log.Debug("job finished", zap.Duration("took", took))
}

// cronLogger adapts zap to cron.Logger for the Recover wrapper.
type cronLogger struct{ l *zap.Logger }

func (c cronLogger) Info(msg string, kv ...interface{}) {
	c.l.Sugar().Infow(msg, kv...)
}

func (c cronLogger) Error(err error, msg string, kv ...interface{}) {
	c.l.Sugar().With(zap.Error(err)).Errorw(msg, kv...)
}
