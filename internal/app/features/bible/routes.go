// internal/app/features/bible/routes.go
package bible

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServePassage)
	return r
}
