// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"time"

	"github.com/dalemusser/gracehub/internal/app/system/timeouts"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// ports, TLS, logging and CORS; everything GraceHub needs beyond that
// lives here and is passed to each lifecycle hook.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Redis view cache; blank disables it
	RedisURL string

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: gracehub-session)
	SessionDomain string // Cookie domain (blank means current host)
	SessionMaxAge time.Duration

	// Site identity
	SiteName    string
	BaseURL     string // e.g., "https://gracehub.example" or "http://localhost:3000"
	PastorEmail string // signups with this address receive the pastor role

	ResetTokenTTL time.Duration

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// Generative AI
	GenAIAPIKey string
	GenAIModel  string

	// Scripture proxy
	ScriptureBaseURL  string
	ScriptureCacheTTL time.Duration

	// M-Pesa (simulated STK push)
	MpesaConsumerKey    string
	MpesaConsumerSecret string
	MpesaShortCode      string
	MpesaPasskey        string
	MpesaCallbackURL    string

	// Request and store deadlines, applied to the timeouts package at startup
	Timeouts timeouts.Config

	// Background jobs
	LinkRepairSchedule    string
	DashboardCacheTTL     time.Duration
	LoginHistoryRetention time.Duration
}
