// internal/app/features/team/routes.go
package team

import (
	"github.com/dalemusser/gracehub/internal/app/system/auth"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RolePastor))
		pr.Post("/", h.HandleSave)
		pr.Put("/{id}", h.HandleSave)
		pr.Delete("/{id}", h.HandleDelete)
	})
	return r
}
