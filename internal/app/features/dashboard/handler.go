// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/gracehub/internal/app/ai"
	"github.com/dalemusser/gracehub/internal/app/features/contributions"
	"github.com/dalemusser/gracehub/internal/app/features/creations"
	"github.com/dalemusser/gracehub/internal/app/features/events"
	"github.com/dalemusser/gracehub/internal/app/features/teachings"
	"github.com/dalemusser/gracehub/internal/app/features/team"
	"github.com/dalemusser/gracehub/internal/app/features/users"
	"github.com/dalemusser/gracehub/internal/app/system/jsonio"
	"github.com/dalemusser/gracehub/internal/app/system/timeouts"
	"github.com/dalemusser/gracehub/internal/app/system/viewcache"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultTTL bounds how long a snapshot may outlive a missed invalidation.
const DefaultTTL = 5 * time.Minute

// Sources are the feature handlers whose read actions feed the views.
type Sources struct {
	DB            *mongo.Database
	Events        *events.Handler
	Teachings     *teachings.Handler
	Users         *users.Handler
	Team          *team.Handler
	Contributions *contributions.Handler
	Creations     *creations.Handler
	AI            *ai.Service
}

// Handler assembles the landing page and the dashboards from parallel
// reads and keeps each one as a snapshot in the view cache.
type Handler struct {
	Src   Sources
	Views viewcache.Cache
	TTL   time.Duration
	Log   *zap.Logger
}

func NewHandler(src Sources, views viewcache.Cache, ttl time.Duration, logger *zap.Logger) *Handler {
	if views == nil {
		views = viewcache.Noop{}
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Handler{Src: src, Views: views, TTL: ttl, Log: logger}
}

// snapshot returns the cached view at path, or builds and caches it.
func snapshot[T any](ctx context.Context, h *Handler, path string, build func(context.Context) (T, error)) (T, error) {
	var v T
	ok, err := h.Views.Get(ctx, path, &v)
	if err != nil {
		h.Log.Warn("view cache read failed", zap.String("path", path), zap.Error(err))
	}
	if ok {
		return v, nil
	}

	v, err = build(ctx)
	if err != nil {
		return v, err
	}
	if err := h.Views.Set(ctx, path, v, h.TTL); err != nil {
		h.Log.Warn("view cache write failed", zap.String("path", path), zap.Error(err))
	}
	return v, nil
}

// cached binds snapshot to one path.
func cached[T any](h *Handler, path string, build func(context.Context) (T, error)) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) { return snapshot(ctx, h, path, build) }
}

// serve runs load under a timeout and writes the result.
func serve[T any](w http.ResponseWriter, r *http.Request, h *Handler, path string, load func(context.Context) (T, error)) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "dashboard"+path)
	defer cancel()

	v, err := load(ctx)
	if err != nil {
		h.Log.Error("build view failed", zap.String("path", path), zap.Error(err))
		jsonio.Error(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}
	jsonio.Write(w, http.StatusOK, v)
}
