// internal/app/features/contributions/routes.go
package contributions

import (
	"net/http"

	"github.com/dalemusser/gracehub/internal/app/system/auth"
	"github.com/dalemusser/gracehub/internal/app/system/jsonio"
	"github.com/dalemusser/gracehub/internal/app/system/timeouts"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireRole(models.RolePastor))
	r.Get("/", h.ServeList)
	return r
}

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "contributions.list")
	defer cancel()
	jsonio.Write(w, http.StatusOK, h.ListContributions(ctx))
}
