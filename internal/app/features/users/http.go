// internal/app/features/users/http.go
package users

import (
	"net/http"
	"strings"

	"github.com/dalemusser/gracehub/internal/app/system/actionresult"
	"github.com/dalemusser/gracehub/internal/app/system/auth"
	"github.com/dalemusser/gracehub/internal/app/system/jsonio"
	"github.com/dalemusser/gracehub/internal/app/system/timeouts"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) ServeMembers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "users.members")
	defer cancel()
	jsonio.Write(w, http.StatusOK, h.ListMembers(ctx))
}

func (h *Handler) ServePastor(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "users.pastor")
	defer cancel()
	p := h.GetPastor(ctx)
	if p == nil {
		jsonio.Error(w, http.StatusNotFound, "Pastor not found.")
		return
	}
	jsonio.Write(w, http.StatusOK, p)
}

// ServeUser handles GET /users/{key}. Members may only read their own
// profile; the pastor may read any.
func (h *Handler) ServeUser(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !mayAccess(r, key) {
		jsonio.Error(w, http.StatusForbidden, "You do not have permission to do that.")
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "users.get")
	defer cancel()

	u := h.GetUser(ctx, key)
	if u == nil {
		jsonio.Error(w, http.StatusNotFound, "User not found.")
		return
	}
	jsonio.Write(w, http.StatusOK, u)
}

// HandlePicture handles PUT /users/{key}/picture with {"imageUrl": ...}.
func (h *Handler) HandlePicture(w http.ResponseWriter, r *http.Request) {
	in := ProfilePictureInput{}
	if err := jsonio.Decode(w, r, &in); err != nil {
		jsonio.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	in.ID = chi.URLParam(r, "key")
	if !mayAccess(r, in.ID) {
		jsonio.Error(w, http.StatusForbidden, "You do not have permission to do that.")
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "users.picture")
	defer cancel()
	actionresult.Write(w, h.UpdateProfilePicture(ctx, in))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "users.delete")
	defer cancel()
	actionresult.Write(w, h.DeleteUser(ctx, chi.URLParam(r, "key")))
}

func mayAccess(r *http.Request, key string) bool {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return false
	}
	if u.Role == models.RolePastor {
		return true
	}
	key = strings.TrimSpace(key)
	return key == u.ID || strings.EqualFold(key, u.Email)
}
