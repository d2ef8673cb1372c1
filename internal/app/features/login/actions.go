// internal/app/features/login/actions.go
package login

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"

	userstore "github.com/dalemusser/gracehub/internal/app/store/users"
	"github.com/dalemusser/gracehub/internal/app/system/actionresult"
	"github.com/dalemusser/gracehub/internal/app/system/inputval"
	"github.com/dalemusser/gracehub/internal/app/system/mailer"
	"github.com/dalemusser/gracehub/internal/app/system/normalize"
	"github.com/dalemusser/gracehub/internal/app/system/viewcache"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgSignedUp       = "Account created successfully! You can now log in."
	msgDuplicateEmail = "An account with this email already exists."
	msgBadCredentials = "Invalid credentials provided."
	msgWrongRole      = "Login failed. You do not have the required role."
	msgLoggedIn       = "Login successful."
	msgResetRequested = "If an account with this email exists, a password reset link has been sent."
	msgResetInvalid   = "This password reset link is invalid or has expired."
	msgResetDone      = "Your password has been reset successfully. You can now log in."
)

// MemberViewPaths are the cached pages that list or count members.
var MemberViewPaths = []string{
	viewcache.PathPastorDashboard,
	viewcache.PathPastorMembers,
	viewcache.PathDashboard,
	viewcache.PathHome,
}

// bcryptCost matches the cost used for every stored hash.
const bcryptCost = 10

// resetTokenBytes is the entropy of a reset token before hex encoding.
const resetTokenBytes = 32

// Signup registers a member. The configured pastor address gets the pastor
// role instead. A concurrent duplicate is caught by the unique email index.
func (h *Handler) Signup(ctx context.Context, in SignupInput) actionresult.Result {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if v := inputval.Validate(&in); v.HasErrors() {
		return h.settle("signup", actionresult.Invalid(v))
	}

	store := userstore.New(h.DB)
	exists, err := store.EmailExists(ctx, in.Email)
	if err != nil {
		h.Log.Error("signup email check failed", zap.Error(err))
		return h.settle("signup", actionresult.Fail(actionresult.GenericFailure))
	}
	if exists {
		return h.settle("signup", actionresult.Fail(msgDuplicateEmail))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		h.Log.Error("hash password failed", zap.Error(err))
		return h.settle("signup", actionresult.Fail(actionresult.GenericFailure))
	}

	role := models.RoleMember
	if h.PastorEmail != "" && normalize.Email(in.Email) == normalize.Email(h.PastorEmail) {
		role = models.RolePastor
	}

	u, err := store.Create(ctx, models.User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		Role:         role,
		PasswordHash: string(hash),
		JoinedAt:     h.now().UTC(),
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		return h.settle("signup", actionresult.Fail(msgDuplicateEmail))
	}
	if err != nil {
		h.Log.Error("create user failed", zap.Error(err))
		return h.settle("signup", actionresult.Fail(actionresult.GenericFailure))
	}

	h.Log.Info("user signed up", zap.String("user_id", u.ID.Hex()), zap.String("role", u.Role))
	viewcache.Invalidate(ctx, h.Views, h.Log, MemberViewPaths...)
	return h.settle("signup", actionresult.OK(msgSignedUp).WithID(u.ID.Hex()))
}

// Login checks credentials and the optional role gate. On success the
// returned user is the one to put in the session.
func (h *Handler) Login(ctx context.Context, in LoginInput) (actionresult.Result, *models.User) {
	in.Identifier = strings.TrimSpace(in.Identifier)
	in.Role = normalize.Role(in.Role)
	if v := inputval.Validate(&in); v.HasErrors() {
		return h.settle("login", actionresult.Invalid(v)), nil
	}

	u, err := userstore.New(h.DB).GetByIdentifier(ctx, in.Identifier)
	switch {
	case errors.Is(err, userstore.ErrNotFound):
		return h.settle("login", actionresult.Fail(msgBadCredentials)), nil
	case err != nil:
		h.Log.Error("login lookup failed", zap.Error(err))
		return h.settle("login", actionresult.Fail(actionresult.GenericFailure)), nil
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return h.settle("login", actionresult.Fail(msgBadCredentials)), nil
	}
	if in.Role != "" && u.Role != in.Role {
		return h.settle("login", actionresult.Fail(msgWrongRole)), nil
	}
	return h.settle("login", actionresult.OK(msgLoggedIn).WithID(u.ID.Hex())), u
}

// RequestPasswordReset issues a one-hour token and mails the link. The
// reply is the same whether or not the account exists.
func (h *Handler) RequestPasswordReset(ctx context.Context, in ForgotPasswordInput) actionresult.Result {
	in.Email = strings.TrimSpace(in.Email)
	if v := inputval.Validate(&in); v.HasErrors() {
		return h.settle("reset_request", actionresult.Invalid(v))
	}

	store := userstore.New(h.DB)
	u, err := store.GetByEmail(ctx, in.Email)
	switch {
	case errors.Is(err, userstore.ErrNotFound):
		return h.settle("reset_request", actionresult.OK(msgResetRequested))
	case err != nil:
		h.Log.Error("reset lookup failed", zap.Error(err))
		return h.settle("reset_request", actionresult.Fail(actionresult.GenericFailure))
	}

	raw := securecookie.GenerateRandomKey(resetTokenBytes)
	if raw == nil {
		h.Log.Error("generate reset token failed")
		return h.settle("reset_request", actionresult.Fail(actionresult.GenericFailure))
	}
	token := hex.EncodeToString(raw)
	expiry := h.now().Add(h.ResetTTL).UTC()

	if err := store.SetResetToken(ctx, u.ID, token, expiry); err != nil {
		h.Log.Error("store reset token failed", zap.String("user_id", u.ID.Hex()), zap.Error(err))
		return h.settle("reset_request", actionresult.Fail(actionresult.GenericFailure))
	}

	link := strings.TrimRight(h.BaseURL, "/") + "/reset-password?token=" + token
	email := mailer.BuildPasswordResetEmail(u.Email, mailer.PasswordResetData{
		SiteName:  h.SiteName,
		Name:      u.Name,
		ResetLink: link,
		ExpiresIn: formatExpiryDuration(h.ResetTTL),
	})
	if err := h.Mailer.Send(ctx, email); err != nil {
		// The token stands; the member can ask again.
		h.Log.Error("send reset email failed", zap.String("user_id", u.ID.Hex()), zap.Error(err))
	}
	return h.settle("reset_request", actionresult.OK(msgResetRequested))
}

// ResetPassword redeems a token. Redemption is atomic, so a token works once.
func (h *Handler) ResetPassword(ctx context.Context, in ResetPasswordInput) actionresult.Result {
	in.Token = strings.TrimSpace(in.Token)
	if v := inputval.Validate(&in); v.HasErrors() {
		return h.settle("reset", actionresult.Invalid(v))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		h.Log.Error("hash password failed", zap.Error(err))
		return h.settle("reset", actionresult.Fail(actionresult.GenericFailure))
	}

	u, err := userstore.New(h.DB).RedeemResetToken(ctx, in.Token, h.now().UTC(), string(hash))
	switch {
	case errors.Is(err, userstore.ErrNotFound):
		return h.settle("reset", actionresult.Fail(msgResetInvalid))
	case err != nil:
		h.Log.Error("redeem reset token failed", zap.Error(err))
		return h.settle("reset", actionresult.Fail(actionresult.GenericFailure))
	}

	h.Limiter.ResetIdentifier(u.Email)
	h.Log.Info("password reset", zap.String("user_id", u.ID.Hex()))
	return h.settle("reset", actionresult.OK(msgResetDone))
}

func (h *Handler) settle(action string, res actionresult.Result) actionresult.Result {
	h.Metrics.Action("auth", action, res.Success)
	return res
}
