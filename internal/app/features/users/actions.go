// internal/app/features/users/actions.go
package users

import (
	"context"
	"errors"
	"strings"

	userstore "github.com/dalemusser/gracehub/internal/app/store/users"
	"github.com/dalemusser/gracehub/internal/app/system/actionresult"
	"github.com/dalemusser/gracehub/internal/app/system/inputval"
	"github.com/dalemusser/gracehub/internal/app/system/placeholder"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	msgInvalidID       = "Invalid user ID."
	msgPictureUpdated  = "Profile picture updated successfully!"
	msgPictureNotFound = "Could not find the user to update."
	msgDeleted         = "User deleted successfully."
	msgDeleteNotFound  = "Could not find user to delete."
)

// phoneUnknown is shown on profiles that never recorded a phone number.
const phoneUnknown = "N/A"

// ListMembers returns every non-pastor user, earliest joiner first.
func (h *Handler) ListMembers(ctx context.Context) []UserView {
	list, err := userstore.New(h.DB).ListMembers(ctx)
	if err != nil {
		h.Log.Error("list members failed", zap.Error(err))
		return []UserView{}
	}
	out := make([]UserView, 0, len(list))
	for _, u := range list {
		out = append(out, ToView(u, placeholder.AvatarSmall))
	}
	return out
}

// GetPastor returns the pastor's profile, or nil when none exists.
func (h *Handler) GetPastor(ctx context.Context) *UserView {
	u, err := userstore.New(h.DB).GetPastor(ctx)
	if err != nil {
		if !errors.Is(err, userstore.ErrNotFound) {
			h.Log.Error("get pastor failed", zap.Error(err))
		}
		return nil
	}
	v := ToView(*u, placeholder.AvatarSmall)
	return &v
}

// GetUser looks a user up by email when the key contains "@", otherwise by
// id. Unknown keys yield nil; there is no fallback identity.
func (h *Handler) GetUser(ctx context.Context, idOrEmail string) *UserView {
	key := strings.TrimSpace(idOrEmail)
	store := userstore.New(h.DB)

	var (
		u   *models.User
		err error
	)
	if strings.Contains(key, "@") {
		u, err = store.GetByEmail(ctx, key)
	} else {
		oid, perr := primitive.ObjectIDFromHex(key)
		if perr != nil {
			return nil
		}
		u, err = store.GetByID(ctx, oid)
	}
	if err != nil {
		if !errors.Is(err, userstore.ErrNotFound) {
			h.Log.Error("get user failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	v := ToView(*u, placeholder.AvatarLarge)
	if v.Phone == "" {
		v.Phone = phoneUnknown
	}
	return &v
}

// UpdateProfilePicture sets the picture URL, or removes it when nil.
func (h *Handler) UpdateProfilePicture(ctx context.Context, in ProfilePictureInput) actionresult.Result {
	in.ID = strings.TrimSpace(in.ID)
	if in.ImageURL != nil {
		trimmed := strings.TrimSpace(*in.ImageURL)
		in.ImageURL = &trimmed
		if trimmed == "" {
			in.ImageURL = nil
		}
	}
	if v := inputval.Validate(&in); v.HasErrors() {
		return h.settle(ctx, "update_picture", actionresult.Invalid(v))
	}
	oid, err := primitive.ObjectIDFromHex(in.ID)
	if err != nil {
		return h.settle(ctx, "update_picture", actionresult.Fail(msgInvalidID))
	}

	err = userstore.New(h.DB).SetImageURL(ctx, oid, in.ImageURL)
	switch {
	case errors.Is(err, userstore.ErrNotFound):
		return h.settle(ctx, "update_picture", actionresult.NotFound(msgPictureNotFound))
	case err != nil:
		h.Log.Error("update profile picture failed", zap.String("user_id", in.ID), zap.Error(err))
		return h.settle(ctx, "update_picture", actionresult.Fail(actionresult.GenericFailure))
	}
	return h.settle(ctx, "update_picture", actionresult.OK(msgPictureUpdated).WithID(in.ID))
}

// DeleteUser removes an account.
func (h *Handler) DeleteUser(ctx context.Context, id string) actionresult.Result {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return h.settle(ctx, "delete", actionresult.Fail(msgInvalidID))
	}
	n, err := userstore.New(h.DB).Delete(ctx, oid)
	if err != nil {
		h.Log.Error("delete user failed", zap.String("user_id", id), zap.Error(err))
		return h.settle(ctx, "delete", actionresult.Fail(actionresult.GenericFailure))
	}
	if n == 0 {
		return h.settle(ctx, "delete", actionresult.NotFound(msgDeleteNotFound))
	}
	return h.settle(ctx, "delete", actionresult.OK(msgDeleted))
}
