// internal/app/features/events/routes.go
package events

import (
	"github.com/dalemusser/gracehub/internal/app/system/auth"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the public event reads and the pastor-only writes.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeEvent)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RolePastor))
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})
	return r
}
