// internal/app/features/creations/http.go
package creations

import (
	"net/http"

	"github.com/dalemusser/gracehub/internal/app/system/actionresult"
	"github.com/dalemusser/gracehub/internal/app/system/jsonio"
	"github.com/dalemusser/gracehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeAll handles GET /pastor/creations with both collections at once.
func (h *Handler) ServeAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "creations.list")
	defer cancel()
	jsonio.Write(w, http.StatusOK, map[string]any{
		"eventIdeas":     h.ListSavedEventIdeas(ctx),
		"sermonOutlines": h.ListSavedSermonOutlines(ctx),
	})
}

func (h *Handler) ServeIdeas(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "creations.ideas")
	defer cancel()
	jsonio.Write(w, http.StatusOK, h.ListSavedEventIdeas(ctx))
}

func (h *Handler) ServeSermons(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "creations.sermons")
	defer cancel()
	jsonio.Write(w, http.StatusOK, h.ListSavedSermonOutlines(ctx))
}

func (h *Handler) HandleSaveIdea(w http.ResponseWriter, r *http.Request) {
	var in SaveIdeaInput
	if err := jsonio.Decode(w, r, &in); err != nil {
		jsonio.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "creations.save_idea")
	defer cancel()
	actionresult.Write(w, h.SaveEventIdea(ctx, in))
}

func (h *Handler) HandleSaveSermon(w http.ResponseWriter, r *http.Request) {
	var in SaveSermonInput
	if err := jsonio.Decode(w, r, &in); err != nil {
		jsonio.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "creations.save_sermon")
	defer cancel()
	actionresult.Write(w, h.SaveSermonOutline(ctx, in))
}

func (h *Handler) HandleDeleteIdea(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "creations.delete_idea")
	defer cancel()
	actionresult.Write(w, h.DeleteSavedEventIdea(ctx, chi.URLParam(r, "id")))
}

func (h *Handler) HandleDeleteSermon(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "creations.delete_sermon")
	defer cancel()
	actionresult.Write(w, h.DeleteSavedSermonOutline(ctx, chi.URLParam(r, "id")))
}
