// internal/app/features/login/routes.go
package login

import (
	"net/http"
	"time"

	"github.com/dalemusser/gracehub/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Register adds the account endpoints to r. Signup and the reset flow share
// a per-IP limit; login has its own in HandleLogin.
func Register(r chi.Router, h *Handler, accountLimit *ratelimit.Limiter) {
	if accountLimit == nil {
		accountLimit = ratelimit.New(5, time.Minute)
	}
	limited := accountLimit.Middleware("Too many requests. Please wait a minute before trying again.")

	r.Post("/login", h.HandleLogin)
	r.With(limited).Post("/signup", h.HandleSignup)
	r.With(limited).Post("/forgot-password", h.HandleForgotPassword)
	r.With(limited).Post("/reset-password", h.HandleResetPassword)
}

func clientIP(r *http.Request) string { return ratelimit.ClientIP(r) }
