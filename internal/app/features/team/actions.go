// internal/app/features/team/actions.go
package team

import (
	"context"
	"errors"
	"strings"

	teamstore "github.com/dalemusser/gracehub/internal/app/store/team"
	"github.com/dalemusser/gracehub/internal/app/system/actionresult"
	"github.com/dalemusser/gracehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/gracehub/internal/app/system/inputval"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	msgInvalidInput   = "Please correct the errors and try again."
	msgAdded          = "Team member added successfully!"
	msgUpdated        = "Team member updated successfully!"
	msgUpdateNotFound = "Could not find team member to update."
	msgInvalidID      = "Invalid team member ID."
	msgDeleted        = "Team member deleted successfully."
	msgDeleteNotFound = "Could not find team member to delete."
)

// SaveTeamMember updates the member named by in.ID when it is a valid
// ObjectID and inserts a new member otherwise.
func (h *Handler) SaveTeamMember(ctx context.Context, in SaveInput) actionresult.Result {
	in.ID = strings.TrimSpace(in.ID)
	in.Name = htmlsanitize.Plain(in.Name)
	in.Position = htmlsanitize.Plain(in.Position)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	if v := inputval.Validate(&in); v.HasErrors() {
		res := actionresult.Invalid(v)
		res.Message = msgInvalidInput
		return h.settle(ctx, "save", res)
	}

	name, position := in.Name, in.Position
	store := teamstore.New(h.DB)

	if oid, err := primitive.ObjectIDFromHex(in.ID); err == nil {
		err := store.Update(ctx, oid, name, position, in.ImageURL)
		switch {
		case errors.Is(err, teamstore.ErrNotFound):
			return h.settle(ctx, "update", actionresult.NotFound(msgUpdateNotFound))
		case err != nil:
			h.Log.Error("update team member failed", zap.String("member_id", in.ID), zap.Error(err))
			return h.settle(ctx, "update", actionresult.Fail(actionresult.GenericFailure))
		}
		return h.settle(ctx, "update", actionresult.OK(msgUpdated).WithID(in.ID))
	}

	created, err := store.Create(ctx, models.TeamMember{Name: name, Position: position, ImageURL: in.ImageURL})
	if err != nil {
		h.Log.Error("create team member failed", zap.Error(err))
		return h.settle(ctx, "create", actionresult.Fail(actionresult.GenericFailure))
	}
	return h.settle(ctx, "create", actionresult.OK(msgAdded).WithID(created.ID.Hex()))
}

// ListTeamMembers returns the roster. Failures yield an empty list.
func (h *Handler) ListTeamMembers(ctx context.Context) []MemberView {
	list, err := teamstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("list team members failed", zap.Error(err))
		return []MemberView{}
	}
	out := make([]MemberView, 0, len(list))
	for _, m := range list {
		out = append(out, ToView(m))
	}
	return out
}

func (h *Handler) DeleteTeamMember(ctx context.Context, id string) actionresult.Result {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return h.settle(ctx, "delete", actionresult.Fail(msgInvalidID))
	}
	n, err := teamstore.New(h.DB).Delete(ctx, oid)
	if err != nil {
		h.Log.Error("delete team member failed", zap.String("member_id", id), zap.Error(err))
		return h.settle(ctx, "delete", actionresult.Fail(actionresult.GenericFailure))
	}
	if n == 0 {
		return h.settle(ctx, "delete", actionresult.NotFound(msgDeleteNotFound))
	}
	return h.settle(ctx, "delete", actionresult.OK(msgDeleted))
}
