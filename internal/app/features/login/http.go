// internal/app/features/login/http.go
package login

import (
	"net/http"

	loginstore "github.com/dalemusser/gracehub/internal/app/store/logins"
	"github.com/dalemusser/gracehub/internal/app/system/actionresult"
	"github.com/dalemusser/gracehub/internal/app/system/auth"
	"github.com/dalemusser/gracehub/internal/app/system/jsonio"
	"github.com/dalemusser/gracehub/internal/app/system/timeouts"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"go.uber.org/zap"
)

// loginResponse adds the signed-in identity to a successful login.
type loginResponse struct {
	actionresult.Result
	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
}

// HandleSignup handles POST /signup.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var in SignupInput
	if err := jsonio.Decode(w, r, &in); err != nil {
		jsonio.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "login.signup")
	defer cancel()
	actionresult.Write(w, h.Signup(ctx, in))
}

// HandleLogin handles POST /login and issues the session cookie.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in LoginInput
	if err := jsonio.Decode(w, r, &in); err != nil {
		jsonio.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if ok, msg := h.Limiter.Check(r, in.Identifier); !ok {
		h.Log.Warn("login rate limited", zap.String("ip", clientIP(r)))
		w.Header().Set("Retry-After", "60")
		jsonio.Error(w, http.StatusTooManyRequests, msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "login.login")
	defer cancel()

	res, u := h.Login(ctx, in)
	if !res.Success {
		actionresult.Write(w, res)
		return
	}

	err := h.SessionMgr.SignIn(w, r, auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	})
	if err != nil {
		h.Log.Error("save session failed", zap.String("user_id", u.ID.Hex()), zap.Error(err))
		actionresult.Write(w, actionresult.Fail(actionresult.GenericFailure))
		return
	}
	h.Limiter.ResetIdentifier(in.Identifier)

	rec := models.LoginRecord{UserID: u.ID, IP: clientIP(r), UserAgent: r.UserAgent(), CreatedAt: h.now().UTC()}
	if err := loginstore.New(h.DB).Create(ctx, rec); err != nil {
		h.Log.Warn("record login failed", zap.String("user_id", u.ID.Hex()), zap.Error(err))
	}

	h.Log.Info("user logged in", zap.String("user_id", u.ID.Hex()), zap.String("role", u.Role))
	jsonio.Write(w, http.StatusOK, loginResponse{Result: res, Role: u.Role, Email: u.Email})
}

// HandleForgotPassword handles POST /forgot-password.
func (h *Handler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in ForgotPasswordInput
	if err := jsonio.Decode(w, r, &in); err != nil {
		jsonio.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "login.forgot")
	defer cancel()
	actionresult.Write(w, h.RequestPasswordReset(ctx, in))
}

// HandleResetPassword handles POST /reset-password.
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var in ResetPasswordInput
	if err := jsonio.Decode(w, r, &in); err != nil {
		jsonio.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Token == "" {
		in.Token = r.URL.Query().Get("token")
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "login.reset")
	defer cancel()
	actionresult.Write(w, h.ResetPassword(ctx, in))
}
