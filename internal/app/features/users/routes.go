// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/gracehub/internal/app/system/auth"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Get("/pastor", h.ServePastor)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/{key}", h.ServeUser)
		pr.Put("/{key}/picture", h.HandlePicture)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RolePastor))
		pr.Get("/", h.ServeMembers)
		pr.Delete("/{key}", h.HandleDelete)
	})
	return r
}
