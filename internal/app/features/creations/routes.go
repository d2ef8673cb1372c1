// internal/app/features/creations/routes.go
package creations

import (
	"github.com/dalemusser/gracehub/internal/app/system/auth"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireRole(models.RolePastor))

	r.Get("/", h.ServeAll)
	r.Get("/ideas", h.ServeIdeas)
	r.Post("/ideas", h.HandleSaveIdea)
	r.Delete("/ideas/{id}", h.HandleDeleteIdea)
	r.Get("/sermons", h.ServeSermons)
	r.Post("/sermons", h.HandleSaveSermon)
	r.Delete("/sermons/{id}", h.HandleDeleteSermon)
	return r
}
