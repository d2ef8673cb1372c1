// internal/app/features/teachings/actions.go
package teachings

import (
	"context"
	"errors"
	"strings"

	teachingstore "github.com/dalemusser/gracehub/internal/app/store/teachings"
	"github.com/dalemusser/gracehub/internal/app/system/actionresult"
	"github.com/dalemusser/gracehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/gracehub/internal/app/system/inputval"
	"github.com/dalemusser/gracehub/internal/app/system/placeholder"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"go.uber.org/zap"
)

const (
	msgCreated        = "Teaching created successfully!"
	msgDeleted        = "Teaching deleted successfully."
	msgDeleteNotFound = "Could not find teaching to delete."
)

// CreateTeaching stores a teaching on its own, without an event.
func (h *Handler) CreateTeaching(ctx context.Context, in CreateTeachingInput) actionresult.Result {
	in.MediaType = strings.ToLower(strings.TrimSpace(in.MediaType))
	in.MediaURL = strings.TrimSpace(in.MediaURL)
	in.Text = htmlsanitize.Plain(in.Text)
	if v := inputval.Validate(&in); v.HasErrors() {
		return h.settle(ctx, "create", actionresult.Invalid(v))
	}

	t := models.Teaching{MediaType: in.MediaType, MediaURL: in.MediaURL}
	if t.MediaURL == "" {
		t.MediaURL = placeholder.Media(in.MediaType)
	}
	if in.Text != "" {
		t.Text = &in.Text
	}

	created, err := teachingstore.New(h.DB).Create(ctx, t)
	if err != nil {
		h.Log.Error("create teaching failed", zap.Error(err))
		return h.settle(ctx, "create", actionresult.Fail(actionresult.GenericFailure))
	}
	return h.settle(ctx, "create", actionresult.OK(msgCreated).WithID(created.TeachingID))
}

// ListTeachings returns teachings newest first. Failures yield an empty list.
func (h *Handler) ListTeachings(ctx context.Context) []TeachingView {
	list, err := teachingstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("list teachings failed", zap.Error(err))
		return []TeachingView{}
	}
	out := make([]TeachingView, 0, len(list))
	for _, t := range list {
		out = append(out, ToView(t))
	}
	return out
}

// GetTeachingByID looks a teaching up by its application id.
func (h *Handler) GetTeachingByID(ctx context.Context, teachingID string) *TeachingView {
	teachingID = strings.TrimSpace(teachingID)
	if teachingID == "" {
		return nil
	}
	t, err := teachingstore.New(h.DB).GetByTeachingID(ctx, teachingID)
	if err != nil {
		if !errors.Is(err, teachingstore.ErrNotFound) {
			h.Log.Error("get teaching failed", zap.String("teaching_id", teachingID), zap.Error(err))
		}
		return nil
	}
	v := ToView(*t)
	return &v
}

// DeleteTeaching unlinks every referencing event and deletes the teaching.
func (h *Handler) DeleteTeaching(ctx context.Context, teachingID string) actionresult.Result {
	teachingID = strings.TrimSpace(teachingID)
	if teachingID == "" {
		return h.settle(ctx, "delete", actionresult.NotFound(msgDeleteNotFound))
	}
	err := teachingstore.New(h.DB).DeleteAndUnlink(ctx, h.Log, teachingID)
	switch {
	case errors.Is(err, teachingstore.ErrNotFound):
		return h.settle(ctx, "delete", actionresult.NotFound(msgDeleteNotFound))
	case err != nil:
		h.Log.Error("delete teaching failed", zap.String("teaching_id", teachingID), zap.Error(err))
		return h.settle(ctx, "delete", actionresult.Fail(actionresult.GenericFailure))
	}
	return h.settle(ctx, "delete", actionresult.OK(msgDeleted))
}
