// internal/app/features/teachings/routes.go
package teachings

import (
	"github.com/dalemusser/gracehub/internal/app/system/auth"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{teachingID}", h.ServeTeaching)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RolePastor))
		pr.Post("/", h.HandleCreate)
		pr.Delete("/{teachingID}", h.HandleDelete)
	})
	return r
}
