// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/gracehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for GraceHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: GRACEHUB_MONGO_URI, GRACEHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "gracehub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "redis_url", Default: "", Desc: "Redis URL for the view cache and job locks (blank disables)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "gracehub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "720h", Desc: "Session cookie lifetime"},

	{Name: "site_name", Default: "GraceHub", Desc: "Display name used in emails"},
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for email links"},
	{Name: "pastor_email", Default: "", Desc: "Email that receives the pastor role on signup"},
	{Name: "reset_token_ttl", Default: "1h", Desc: "Password reset link lifetime"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host (blank logs emails instead)"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@gracehub.local", Desc: "From email address"},
	{Name: "mail_from_name", Default: "GraceHub", Desc: "From display name"},

	// Generative AI
	{Name: "genai_api_key", Default: "", Desc: "Gemini API key (blank disables the assistant)"},
	{Name: "genai_model", Default: "gemini-2.0-flash", Desc: "Gemini model name"},

	// Scripture proxy
	{Name: "scripture_base_url", Default: "https://bible-api.com", Desc: "Bible passage API base URL"},
	{Name: "scripture_cache_ttl", Default: "24h", Desc: "How long passages stay cached"},

	// M-Pesa
	{Name: "mpesa_consumer_key", Default: "", Desc: "M-Pesa consumer key"},
	{Name: "mpesa_consumer_secret", Default: "", Desc: "M-Pesa consumer secret"},
	{Name: "mpesa_shortcode", Default: "", Desc: "M-Pesa business short code"},
	{Name: "mpesa_passkey", Default: "", Desc: "M-Pesa passkey"},
	{Name: "mpesa_callback_url", Default: "", Desc: "M-Pesa result callback URL"},

	// Deadlines
	{Name: "timeout_ping", Default: "2s", Desc: "Health check deadline"},
	{Name: "timeout_short", Default: "5s", Desc: "Single-document read/write deadline"},
	{Name: "timeout_medium", Default: "10s", Desc: "List query and dashboard deadline"},
	{Name: "timeout_long", Default: "30s", Desc: "Multi-collection write and background job deadline"},
	{Name: "timeout_upstream", Default: "45s", Desc: "Gemini, scripture and M-Pesa call deadline"},

	// Background jobs and caching
	{Name: "link_repair_schedule", Default: "@every 1h", Desc: "Cron spec for the dangling teaching link repair"},
	{Name: "dashboard_cache_ttl", Default: "5m", Desc: "Upper bound on dashboard snapshot age"},
	{Name: "login_history_retention", Default: "2160h", Desc: "How long login records are kept (default 90 days)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, GRACEHUB_* for app) and flags,
// merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "GRACEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		RedisURL:         strings.TrimSpace(appValues.String("redis_url")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 30*24*time.Hour),

		SiteName:      appValues.String("site_name"),
		BaseURL:       appValues.String("base_url"),
		PastorEmail:   appValues.String("pastor_email"),
		ResetTokenTTL: appValues.Duration("reset_token_ttl", time.Hour),

		// Email/SMTP
		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		GenAIAPIKey: appValues.String("genai_api_key"),
		GenAIModel:  appValues.String("genai_model"),

		ScriptureBaseURL:  appValues.String("scripture_base_url"),
		ScriptureCacheTTL: appValues.Duration("scripture_cache_ttl", 24*time.Hour),

		MpesaConsumerKey:    appValues.String("mpesa_consumer_key"),
		MpesaConsumerSecret: appValues.String("mpesa_consumer_secret"),
		MpesaShortCode:      appValues.String("mpesa_shortcode"),
		MpesaPasskey:        appValues.String("mpesa_passkey"),
		MpesaCallbackURL:    appValues.String("mpesa_callback_url"),

		Timeouts: timeouts.Config{
			Ping:     appValues.Duration("timeout_ping", timeouts.DefaultPing),
			Short:    appValues.Duration("timeout_short", timeouts.DefaultShort),
			Medium:   appValues.Duration("timeout_medium", timeouts.DefaultMedium),
			Long:     appValues.Duration("timeout_long", timeouts.DefaultLong),
			Upstream: appValues.Duration("timeout_upstream", timeouts.DefaultUpstream),
		},

		LinkRepairSchedule:    appValues.String("link_repair_schedule"),
		DashboardCacheTTL:     appValues.Duration("dashboard_cache_ttl", 5*time.Minute),
		LoginHistoryRetention: appValues.Duration("login_history_retention", 90*24*time.Hour),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// GraceHub validates the MongoDB URI, the Redis URL and the link repair
// schedule so configuration errors surface before anything connects.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.RedisURL != "" {
		if _, err := redis.ParseURL(appCfg.RedisURL); err != nil {
			logger.Error("invalid Redis URL", zap.Error(err))
			return fmt.Errorf("invalid Redis URL: %w", err)
		}
	}

	if _, err := cron.ParseStandard(appCfg.LinkRepairSchedule); err != nil {
		return fmt.Errorf("invalid link_repair_schedule %q: %w", appCfg.LinkRepairSchedule, err)
	}

	if appCfg.ResetTokenTTL <= 0 {
		return fmt.Errorf("reset_token_ttl must be positive")
	}

	t := appCfg.Timeouts
	for name, d := range map[string]time.Duration{
		"timeout_ping": t.Ping, "timeout_short": t.Short, "timeout_medium": t.Medium,
		"timeout_long": t.Long, "timeout_upstream": t.Upstream,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}

	return nil
}
