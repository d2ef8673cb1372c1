// internal/app/features/team/handler.go
package team

import (
	"context"

	"github.com/dalemusser/gracehub/internal/app/system/actionresult"
	"github.com/dalemusser/gracehub/internal/app/system/metrics"
	"github.com/dalemusser/gracehub/internal/app/system/viewcache"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the ministry team roster.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Views   viewcache.Cache
	Metrics *metrics.Metrics
}

func NewHandler(db *mongo.Database, views viewcache.Cache, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, Views: views, Metrics: m}
}

// settle records the outcome. The roster appears on the members page, the
// home page and the member dashboard; the pastor overview counts it.
func (h *Handler) settle(ctx context.Context, action string, res actionresult.Result) actionresult.Result {
	h.Metrics.Action("team_member", action, res.Success)
	if res.Success {
		viewcache.Invalidate(ctx, h.Views, h.Log,
			viewcache.PathPastorMembers, viewcache.PathPastorDashboard, viewcache.PathHome, viewcache.PathDashboard)
	}
	return res
}
