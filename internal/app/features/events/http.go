// internal/app/features/events/http.go
package events

import (
	"net/http"

	"github.com/dalemusser/gracehub/internal/app/system/actionresult"
	"github.com/dalemusser/gracehub/internal/app/system/jsonio"
	"github.com/dalemusser/gracehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeList handles GET /events.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "events.list")
	defer cancel()
	jsonio.Write(w, http.StatusOK, h.ListEvents(ctx))
}

// ServeEvent handles GET /events/{id}.
func (h *Handler) ServeEvent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "events.get")
	defer cancel()

	d := h.GetEventByID(ctx, chi.URLParam(r, "id"))
	if d == nil {
		jsonio.Error(w, http.StatusNotFound, "Event not found.")
		return
	}
	jsonio.Write(w, http.StatusOK, d)
}

// HandleCreate handles POST /events.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in CreateEventInput
	if err := jsonio.Decode(w, r, &in); err != nil {
		jsonio.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "events.create")
	defer cancel()
	actionresult.Write(w, h.CreateEvent(ctx, in))
}

// HandleUpdate handles PUT /events/{id}. The path id wins over the body.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in UpdateEventInput
	if err := jsonio.Decode(w, r, &in); err != nil {
		jsonio.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	in.ID = chi.URLParam(r, "id")
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "events.update")
	defer cancel()
	actionresult.Write(w, h.UpdateEvent(ctx, in))
}

// HandleDelete handles DELETE /events/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "events.delete")
	defer cancel()
	actionresult.Write(w, h.DeleteEvent(ctx, chi.URLParam(r, "id")))
}
