// internal/app/features/team/http.go
package team

import (
	"net/http"

	"github.com/dalemusser/gracehub/internal/app/system/actionresult"
	"github.com/dalemusser/gracehub/internal/app/system/jsonio"
	"github.com/dalemusser/gracehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "team.list")
	defer cancel()
	jsonio.Write(w, http.StatusOK, h.ListTeamMembers(ctx))
}

// HandleSave handles POST /team (add) and PUT /team/{id} (update).
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var in SaveInput
	if err := jsonio.Decode(w, r, &in); err != nil {
		jsonio.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		in.ID = id
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "team.save")
	defer cancel()
	actionresult.Write(w, h.SaveTeamMember(ctx, in))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "team.delete")
	defer cancel()
	actionresult.Write(w, h.DeleteTeamMember(ctx, chi.URLParam(r, "id")))
}
