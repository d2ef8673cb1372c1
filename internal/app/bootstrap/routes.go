// internal/app/bootstrap/routes.go
package bootstrap

import (
	"errors"
	"net/http"

	assistantfeature "github.com/dalemusser/gracehub/internal/app/features/assistant"
	biblefeature "github.com/dalemusser/gracehub/internal/app/features/bible"
	contributionsfeature "github.com/dalemusser/gracehub/internal/app/features/contributions"
	creationsfeature "github.com/dalemusser/gracehub/internal/app/features/creations"
	dashboardfeature "github.com/dalemusser/gracehub/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/gracehub/internal/app/features/errors"
	eventsfeature "github.com/dalemusser/gracehub/internal/app/features/events"
	givefeature "github.com/dalemusser/gracehub/internal/app/features/give"
	healthfeature "github.com/dalemusser/gracehub/internal/app/features/health"
	loginfeature "github.com/dalemusser/gracehub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/gracehub/internal/app/features/logout"
	teachingsfeature "github.com/dalemusser/gracehub/internal/app/features/teachings"
	teamfeature "github.com/dalemusser/gracehub/internal/app/features/team"
	userinfofeature "github.com/dalemusser/gracehub/internal/app/features/userinfo"
	usersfeature "github.com/dalemusser/gracehub/internal/app/features/users"
	loginstore "github.com/dalemusser/gracehub/internal/app/store/logins"
	userstore "github.com/dalemusser/gracehub/internal/app/store/users"
	"github.com/dalemusser/gracehub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. GraceHub applies session middleware and
// mounts the JSON feature routers: the entity modules, auth, the assistant,
// scripture, giving, the dashboards, health and metrics.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	s := currentServices()
	if s == nil {
		return nil, errors.New("bootstrap: Startup has not run")
	}
	db := deps.MongoDatabase

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Reload the session user on each request so role changes and deleted
	// accounts take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db))

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Health check and metrics for load balancers and scrapers
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Redis, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", s.metrics.Handler())

	// Entity modules
	eventsHandler := eventsfeature.NewHandler(db, s.views, s.metrics, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler, sessionMgr))

	teachingsHandler := teachingsfeature.NewHandler(db, s.views, s.metrics, logger)
	r.Mount("/teachings", teachingsfeature.Routes(teachingsHandler, sessionMgr))

	usersHandler := usersfeature.NewHandler(db, s.views, s.metrics, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, sessionMgr))

	teamHandler := teamfeature.NewHandler(db, s.views, s.metrics, logger)
	r.Mount("/team", teamfeature.Routes(teamHandler, sessionMgr))

	contributionsHandler := contributionsfeature.NewHandler(db, logger)
	r.Mount("/contributions", contributionsfeature.Routes(contributionsHandler, sessionMgr))

	creationsHandler := creationsfeature.NewHandler(db, s.views, s.metrics, logger)
	r.Mount("/pastor/creations", creationsfeature.Routes(creationsHandler, sessionMgr))

	// Authentication
	loginHandler := loginfeature.NewHandler(db, s.views, sessionMgr, s.mail, s.loginLimit, s.metrics, loginfeature.Options{
		SiteName:    appCfg.SiteName,
		BaseURL:     appCfg.BaseURL,
		PastorEmail: appCfg.PastorEmail,
		ResetTTL:    appCfg.ResetTokenTTL,
	}, logger)
	loginfeature.Register(r, loginHandler, s.accountLimit)

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	userinfoHandler := userinfofeature.NewHandler(usersHandler, loginstore.New(db))
	r.Mount("/me", userinfofeature.Routes(userinfoHandler, sessionMgr))

	// AI assistant, scripture and giving
	assistantHandler := assistantfeature.NewHandler(s.ai, s.metrics, logger)
	r.Mount("/pastor/assistant", assistantfeature.PastorRoutes(assistantHandler, sessionMgr))
	assistantfeature.Register(r, assistantHandler, sessionMgr)

	bibleHandler := biblefeature.NewHandler(s.scripture, logger)
	r.Mount("/bible", biblefeature.Routes(bibleHandler))

	giveHandler := givefeature.NewHandler(s.mpesa, s.metrics, logger)
	r.Mount("/give", givefeature.Routes(giveHandler, sessionMgr))

	// Landing page and dashboards
	dashboardHandler := dashboardfeature.NewHandler(dashboardfeature.Sources{
		DB:            db,
		Events:        eventsHandler,
		Teachings:     teachingsHandler,
		Users:         usersHandler,
		Team:          teamHandler,
		Contributions: contributionsHandler,
		Creations:     creationsHandler,
		AI:            s.ai,
	}, s.views, appCfg.DashboardCacheTTL, logger)
	dashboardfeature.Register(r, dashboardHandler, sessionMgr)

	return r, nil
}
