// internal/app/features/login/handler.go
package login

import (
	"fmt"
	"time"

	"github.com/dalemusser/gracehub/internal/app/system/auth"
	"github.com/dalemusser/gracehub/internal/app/system/mailer"
	"github.com/dalemusser/gracehub/internal/app/system/metrics"
	"github.com/dalemusser/gracehub/internal/app/system/ratelimit"
	"github.com/dalemusser/gracehub/internal/app/system/viewcache"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns signup, login and the password reset flow.
type Handler struct {
	DB         *mongo.Database
	Views      viewcache.Cache
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Mailer     mailer.Sender
	Limiter    *ratelimit.LoginLimiter
	Metrics    *metrics.Metrics

	SiteName    string
	BaseURL     string        // prefix for reset links, e.g. "https://gracehub.example"
	PastorEmail string        // signups with this address become the pastor
	ResetTTL    time.Duration // lifetime of a password reset token

	now func() time.Time
}

// Options are the deployment settings the handler needs.
type Options struct {
	SiteName    string
	BaseURL     string
	PastorEmail string
	ResetTTL    time.Duration
}

func NewHandler(
	db *mongo.Database,
	views viewcache.Cache,
	sessionMgr *auth.SessionManager,
	mail mailer.Sender,
	limiter *ratelimit.LoginLimiter,
	m *metrics.Metrics,
	opts Options,
	logger *zap.Logger,
) *Handler {
	if opts.ResetTTL <= 0 {
		opts.ResetTTL = time.Hour
	}
	if opts.SiteName == "" {
		opts.SiteName = "GraceHub"
	}
	if views == nil {
		views = viewcache.Noop{}
	}
	if limiter == nil {
		limiter = ratelimit.NewLoginLimiter()
	}
	return &Handler{
		DB:          db,
		Views:       views,
		Log:         logger,
		SessionMgr:  sessionMgr,
		Mailer:      mail,
		Limiter:     limiter,
		Metrics:     m,
		SiteName:    opts.SiteName,
		BaseURL:     opts.BaseURL,
		PastorEmail: opts.PastorEmail,
		ResetTTL:    opts.ResetTTL,
		now:         time.Now,
	}
}

// WithClock replaces the clock used for token expiry. Tests only.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

// formatExpiryDuration renders d for humans, e.g. "30 minutes", "1 hour".
func formatExpiryDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes < 60 {
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}
	hours := minutes / 60
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
