// internal/app/features/userinfo/handler.go
package userinfo

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/gracehub/internal/app/features/users"
	loginstore "github.com/dalemusser/gracehub/internal/app/store/logins"
	"github.com/dalemusser/gracehub/internal/app/system/auth"
	"github.com/dalemusser/gracehub/internal/app/system/jsonio"
	"github.com/dalemusser/gracehub/internal/app/system/timeouts"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// LoginHistory reports a user's most recent sign-in.
type LoginHistory interface {
	Last(ctx context.Context, userID primitive.ObjectID) (*models.LoginRecord, error)
}

// Handler serves the signed-in user's own profile.
type Handler struct {
	Users  *users.Handler
	Logins LoginHistory
}

func NewHandler(u *users.Handler, logins LoginHistory) *Handler {
	return &Handler{Users: u, Logins: logins}
}

// MeView is the profile plus when the account last signed in.
type MeView struct {
	users.UserView
	LastLoginAt string `json:"lastLoginAt,omitempty"`
}

// ServeMe handles GET /me. Without a session the route middleware has
// already answered 401; a session whose account vanished gets 404.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		jsonio.Error(w, http.StatusUnauthorized, "Please sign in.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Users.Log, "userinfo.me")
	defer cancel()

	u := h.Users.GetUser(ctx, su.ID)
	if u == nil {
		jsonio.Error(w, http.StatusNotFound, "User not found.")
		return
	}
	jsonio.Write(w, http.StatusOK, MeView{UserView: *u, LastLoginAt: h.lastLogin(ctx, u.ID)})
}

// lastLogin returns "" when there is no record or the lookup fails; the
// profile is still served.
func (h *Handler) lastLogin(ctx context.Context, userID string) string {
	if h.Logins == nil {
		return ""
	}
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ""
	}
	rec, err := h.Logins.Last(ctx, oid)
	switch {
	case errors.Is(err, loginstore.ErrNotFound):
		return ""
	case err != nil:
		h.Users.Log.Warn("last login lookup failed", zap.String("user_id", userID), zap.Error(err))
		return ""
	}
	return rec.CreatedAt.UTC().Format(time.RFC3339)
}
