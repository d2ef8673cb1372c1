// internal/app/features/teachings/http.go
package teachings

import (
	"net/http"

	"github.com/dalemusser/gracehub/internal/app/system/actionresult"
	"github.com/dalemusser/gracehub/internal/app/system/jsonio"
	"github.com/dalemusser/gracehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "teachings.list")
	defer cancel()
	jsonio.Write(w, http.StatusOK, h.ListTeachings(ctx))
}

func (h *Handler) ServeTeaching(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "teachings.get")
	defer cancel()

	t := h.GetTeachingByID(ctx, chi.URLParam(r, "teachingID"))
	if t == nil {
		jsonio.Error(w, http.StatusNotFound, "Teaching not found.")
		return
	}
	jsonio.Write(w, http.StatusOK, t)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in CreateTeachingInput
	if err := jsonio.Decode(w, r, &in); err != nil {
		jsonio.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "teachings.create")
	defer cancel()
	actionresult.Write(w, h.CreateTeaching(ctx, in))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "teachings.delete")
	defer cancel()
	actionresult.Write(w, h.DeleteTeaching(ctx, chi.URLParam(r, "teachingID")))
}
