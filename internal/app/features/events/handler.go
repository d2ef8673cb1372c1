// internal/app/features/events/handler.go
package events

import (
	"context"

	"github.com/dalemusser/gracehub/internal/app/system/actionresult"
	"github.com/dalemusser/gracehub/internal/app/system/metrics"
	"github.com/dalemusser/gracehub/internal/app/system/viewcache"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves events and the teachings created alongside them.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Views   viewcache.Cache
	Metrics *metrics.Metrics
}

func NewHandler(db *mongo.Database, views viewcache.Cache, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, Views: views, Metrics: m}
}

// settle records the outcome and drops the dashboards that list events.
func (h *Handler) settle(ctx context.Context, action string, res actionresult.Result) actionresult.Result {
	h.Metrics.Action("event", action, res.Success)
	if res.Success {
		viewcache.Invalidate(ctx, h.Views, h.Log,
			viewcache.PathPastorDashboard, viewcache.PathDashboard, viewcache.PathHome)
	}
	return res
}
