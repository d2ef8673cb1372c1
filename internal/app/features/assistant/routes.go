// internal/app/features/assistant/routes.go
package assistant

import (
	"github.com/dalemusser/gracehub/internal/app/system/auth"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// PastorRoutes serves the pastor's generators under /pastor/assistant.
func PastorRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireRole(models.RolePastor))
	r.Post("/event-ideas", h.HandleEventIdeas)
	r.Post("/sermon-outline", h.HandleSermonOutline)
	return r
}

// Register adds the member-facing endpoints to r.
func Register(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Get("/daily-quote", h.ServeDailyQuote)
	r.With(sm.RequireSignedIn).Post("/counsel", h.HandleCounsel)
}
