// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dalemusser/gracehub/internal/app/ai"
	loginfeature "github.com/dalemusser/gracehub/internal/app/features/login"
	loginstore "github.com/dalemusser/gracehub/internal/app/store/logins"
	teachingstore "github.com/dalemusser/gracehub/internal/app/store/teachings"
	userstore "github.com/dalemusser/gracehub/internal/app/store/users"
	"github.com/dalemusser/gracehub/internal/app/system/mailer"
	"github.com/dalemusser/gracehub/internal/app/system/metrics"
	"github.com/dalemusser/gracehub/internal/app/system/mpesa"
	"github.com/dalemusser/gracehub/internal/app/system/ratelimit"
	"github.com/dalemusser/gracehub/internal/app/system/scripture"
	"github.com/dalemusser/gracehub/internal/app/system/tasks"
	"github.com/dalemusser/gracehub/internal/app/system/timeouts"
	"github.com/dalemusser/gracehub/internal/app/system/viewcache"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// services are the long-lived collaborators shared by the HTTP layer and
// the background jobs. Startup builds them; BuildHandler and Shutdown use them.
type services struct {
	views        viewcache.Cache
	metrics      *metrics.Metrics
	ai           *ai.Service
	aiConfigured bool
	mail         mailer.Sender
	scripture    *scripture.Client
	mpesa        *mpesa.Client
	loginLimit   *ratelimit.LoginLimiter
	accountLimit *ratelimit.Limiter
	scheduler    *tasks.Scheduler
}

var (
	svcMu sync.Mutex
	svc   *services
)

func currentServices() *services {
	svcMu.Lock()
	defer svcMu.Unlock()
	return svc
}

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(appCfg.Timeouts)
	cur := timeouts.Current()
	logger.Info("timeouts configured",
		zap.Duration("ping", cur.Ping),
		zap.Duration("short", cur.Short),
		zap.Duration("medium", cur.Medium),
		zap.Duration("long", cur.Long),
		zap.Duration("upstream", cur.Upstream),
	)

	s, err := buildServices(ctx, appCfg, deps, logger)
	if err != nil {
		return err
	}

	if err := ensurePastor(ctx, deps, s.views, appCfg.PastorEmail, logger); err != nil {
		return err
	}

	s.scheduler = tasks.NewScheduler(logger, jobLocker(deps), s.metrics)
	for _, job := range scheduledJobs(appCfg, deps, s, logger) {
		if err := s.scheduler.Add(job); err != nil {
			return err
		}
	}
	s.scheduler.Start()

	svcMu.Lock()
	svc = s
	svcMu.Unlock()
	return nil
}

func buildServices(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (*services, error) {
	s := &services{
		metrics:      metrics.New(prometheus.NewRegistry()),
		loginLimit:   ratelimit.NewLoginLimiter(),
		accountLimit: ratelimit.New(5, time.Minute),
	}

	s.views = viewcache.Noop{}
	if deps.Redis != nil {
		s.views = viewcache.NewRedis(deps.Redis)
	}

	var gen ai.Generator = ai.Unconfigured{}
	if appCfg.GenAIAPIKey != "" {
		g, err := ai.NewGemini(ctx, appCfg.GenAIAPIKey, appCfg.GenAIModel)
		if err != nil {
			return nil, err
		}
		gen = g
		s.aiConfigured = true
	} else {
		logger.Warn("genai_api_key not set; assistant endpoints will fail")
	}
	s.ai = ai.NewService(gen, s.views, logger)

	s.mail = mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Pass:     appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)

	s.scripture = scripture.New(appCfg.ScriptureBaseURL,
		&http.Client{Timeout: timeouts.Upstream()}, s.views, appCfg.ScriptureCacheTTL, logger)

	s.mpesa = mpesa.New(mpesa.Config{
		ConsumerKey:    appCfg.MpesaConsumerKey,
		ConsumerSecret: appCfg.MpesaConsumerSecret,
		ShortCode:      appCfg.MpesaShortCode,
		Passkey:        appCfg.MpesaPasskey,
		CallbackURL:    appCfg.MpesaCallbackURL,
	}, logger)

	return s, nil
}

// jobLocker shares job runs across instances when Redis is available.
func jobLocker(deps DBDeps) tasks.Locker {
	if deps.Redis == nil {
		return nil
	}
	return tasks.NewRedisLock(deps.Redis)
}

func scheduledJobs(appCfg AppConfig, deps DBDeps, s *services, logger *zap.Logger) []tasks.Job {
	db := deps.MongoDatabase
	jobs := []tasks.Job{
		tasks.LinkRepairJob(teachingstore.New(db), s.views, logger, appCfg.LinkRepairSchedule),
		tasks.ResetTokenCleanupJob(userstore.New(db), logger, time.Now),
		tasks.LoginHistoryPruneJob(loginstore.New(db), appCfg.LoginHistoryRetention, logger, time.Now),
		tasks.RateLimitSweepJob("login", s.loginLimit, logger),
		tasks.RateLimitSweepJob("accounts", s.accountLimit, logger),
	}
	if s.aiConfigured {
		jobs = append(jobs, tasks.DailyQuoteJob(s.ai))
	}
	return jobs
}

// ensurePastor promotes the configured pastor account if it already exists.
// A pastor who has not signed up yet receives the role at signup. Views
// cached by a previous run are dropped when the role changes.
func ensurePastor(ctx context.Context, deps DBDeps, views viewcache.Cache, email string, logger *zap.Logger) error {
	if email == "" {
		return nil
	}
	changed, err := userstore.New(deps.MongoDatabase).SetRoleByEmail(ctx, email, models.RolePastor)
	switch {
	case errors.Is(err, userstore.ErrNotFound):
		logger.Info("pastor account not registered yet", zap.String("email", email))
		return nil
	case err != nil:
		return err
	case changed:
		logger.Info("promoted account to pastor", zap.String("email", email))
		viewcache.Invalidate(ctx, views, logger, loginfeature.MemberViewPaths...)
	}
	return nil
}
