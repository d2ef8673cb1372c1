// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/gracehub/internal/app/system/jsonio"
)

// Handler answers the error routes and the router's fallbacks with JSON.
// No DB needed.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden handles GET /forbidden, the target of role redirects.
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	jsonio.Error(w, http.StatusForbidden, "You don't have permission to view this page.")
}

// Unauthorized handles GET /unauthorized.
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	jsonio.Error(w, http.StatusUnauthorized, "Please sign in to continue.")
}

// NotFound is installed as the router's NotFound handler.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	jsonio.Error(w, http.StatusNotFound, "Not found.")
}

// MethodNotAllowed is installed as the router's MethodNotAllowed handler.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	jsonio.Error(w, http.StatusMethodNotAllowed, "Method not allowed.")
}
