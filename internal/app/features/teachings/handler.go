// internal/app/features/teachings/handler.go
package teachings

import (
	"context"

	"github.com/dalemusser/gracehub/internal/app/system/actionresult"
	"github.com/dalemusser/gracehub/internal/app/system/metrics"
	"github.com/dalemusser/gracehub/internal/app/system/viewcache"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Views   viewcache.Cache
	Metrics *metrics.Metrics
}

func NewHandler(db *mongo.Database, views viewcache.Cache, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, Views: views, Metrics: m}
}

func (h *Handler) settle(ctx context.Context, action string, res actionresult.Result) actionresult.Result {
	h.Metrics.Action("teaching", action, res.Success)
	if res.Success {
		viewcache.Invalidate(ctx, h.Views, h.Log, viewcache.PathPastorDashboard, viewcache.PathDashboard)
	}
	return res
}
