// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/dalemusser/gracehub/internal/app/system/auth"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Register wires the landing page and the dashboards onto the root router.
func Register(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Get("/", h.ServeHome)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/dashboard", h.ServeMember)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RolePastor))
		pr.Get("/pastor/dashboard", h.ServePastor)
		pr.Get("/pastor/dashboard/members", h.ServePastorMembers)
		pr.Get("/pastor/dashboard/creations", h.ServePastorCreations)
	})
}
