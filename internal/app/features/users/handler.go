// internal/app/features/users/handler.go
package users

import (
	"context"

	"github.com/dalemusser/gracehub/internal/app/system/actionresult"
	"github.com/dalemusser/gracehub/internal/app/system/metrics"
	"github.com/dalemusser/gracehub/internal/app/system/viewcache"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves member and pastor profiles.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Views   viewcache.Cache
	Metrics *metrics.Metrics
}

func NewHandler(db *mongo.Database, views viewcache.Cache, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, Views: views, Metrics: m}
}

// settle records the outcome. Users appear on every dashboard except the
// creations page; the pastor's picture is also on the home page.
func (h *Handler) settle(ctx context.Context, action string, res actionresult.Result) actionresult.Result {
	h.Metrics.Action("user", action, res.Success)
	if res.Success {
		viewcache.Invalidate(ctx, h.Views, h.Log, viewcache.PathPastorDashboard,
			viewcache.PathPastorMembers, viewcache.PathDashboard, viewcache.PathHome)
	}
	return res
}
