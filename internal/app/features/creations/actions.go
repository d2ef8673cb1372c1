// internal/app/features/creations/actions.go
package creations

import (
	"context"
	"strings"

	creationstore "github.com/dalemusser/gracehub/internal/app/store/creations"
	"github.com/dalemusser/gracehub/internal/app/system/actionresult"
	"github.com/dalemusser/gracehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/gracehub/internal/app/system/inputval"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	entityIdea   = "event_idea"
	entitySermon = "sermon_outline"

	msgIdeaSaved      = "Event idea saved successfully!"
	msgSermonSaved    = "Sermon outline saved successfully!"
	msgIdeaDeleted    = "Saved idea deleted."
	msgSermonDeleted  = "Saved sermon deleted."
	msgIdeaNotFound   = "Could not find idea to delete."
	msgSermonNotFound = "Could not find sermon to delete."
	msgInvalidID      = "Invalid ID."
)

func (h *Handler) SaveEventIdea(ctx context.Context, in SaveIdeaInput) actionresult.Result {
	in.Title = htmlsanitize.Plain(in.Title)
	in.Description = htmlsanitize.Plain(in.Description)
	if v := inputval.Validate(&in); v.HasErrors() {
		return h.settle(ctx, entityIdea, "create", actionresult.Invalid(v))
	}

	saved, err := creationstore.New(h.DB).SaveIdea(ctx, models.SavedEventIdea{
		Title:       in.Title,
		Description: in.Description,
	})
	if err != nil {
		h.Log.Error("save event idea failed", zap.Error(err))
		return h.settle(ctx, entityIdea, "create", actionresult.Fail(actionresult.GenericFailure))
	}
	return h.settle(ctx, entityIdea, "create", actionresult.OK(msgIdeaSaved).WithID(saved.ID.Hex()))
}

func (h *Handler) SaveSermonOutline(ctx context.Context, in SaveSermonInput) actionresult.Result {
	in.SermonTitle = htmlsanitize.Plain(in.SermonTitle)
	for i := range in.Outline {
		in.Outline[i].PointTitle = htmlsanitize.Plain(in.Outline[i].PointTitle)
		in.Outline[i].Content = htmlsanitize.Plain(in.Outline[i].Content)
	}
	if v := inputval.Validate(&in); v.HasErrors() {
		return h.settle(ctx, entitySermon, "create", actionresult.Invalid(v))
	}

	doc := models.SavedSermonOutline{
		SermonTitle: in.SermonTitle,
		Outline:     make([]models.SermonPoint, 0, len(in.Outline)),
	}
	for _, p := range in.Outline {
		verses := make([]string, 0, len(p.SupportingVerses))
		for _, v := range p.SupportingVerses {
			if v = htmlsanitize.Plain(v); v != "" {
				verses = append(verses, v)
			}
		}
		doc.Outline = append(doc.Outline, models.SermonPoint{
			PointTitle:       p.PointTitle,
			Content:          p.Content,
			SupportingVerses: verses,
		})
	}

	saved, err := creationstore.New(h.DB).SaveSermon(ctx, doc)
	if err != nil {
		h.Log.Error("save sermon outline failed", zap.Error(err))
		return h.settle(ctx, entitySermon, "create", actionresult.Fail(actionresult.GenericFailure))
	}
	return h.settle(ctx, entitySermon, "create", actionresult.OK(msgSermonSaved).WithID(saved.ID.Hex()))
}

// ListSavedEventIdeas returns saved ideas newest first.
func (h *Handler) ListSavedEventIdeas(ctx context.Context) []IdeaView {
	list, err := creationstore.New(h.DB).ListIdeas(ctx)
	if err != nil {
		h.Log.Error("list saved ideas failed", zap.Error(err))
		return []IdeaView{}
	}
	out := make([]IdeaView, 0, len(list))
	for _, i := range list {
		out = append(out, ideaView(i))
	}
	return out
}

// ListSavedSermonOutlines returns saved outlines newest first.
func (h *Handler) ListSavedSermonOutlines(ctx context.Context) []SermonView {
	list, err := creationstore.New(h.DB).ListSermons(ctx)
	if err != nil {
		h.Log.Error("list saved sermons failed", zap.Error(err))
		return []SermonView{}
	}
	out := make([]SermonView, 0, len(list))
	for _, s := range list {
		out = append(out, sermonView(s))
	}
	return out
}

func (h *Handler) DeleteSavedEventIdea(ctx context.Context, id string) actionresult.Result {
	return h.remove(ctx, entityIdea, id, creationstore.New(h.DB).DeleteIdea, msgIdeaDeleted, msgIdeaNotFound)
}

func (h *Handler) DeleteSavedSermonOutline(ctx context.Context, id string) actionresult.Result {
	return h.remove(ctx, entitySermon, id, creationstore.New(h.DB).DeleteSermon, msgSermonDeleted, msgSermonNotFound)
}

func (h *Handler) remove(ctx context.Context, entity, id string,
	del func(context.Context, primitive.ObjectID) (int64, error), okMsg, missingMsg string) actionresult.Result {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return h.settle(ctx, entity, "delete", actionresult.Fail(msgInvalidID))
	}
	n, err := del(ctx, oid)
	if err != nil {
		h.Log.Error("delete saved creation failed", zap.String("entity", entity), zap.String("id", id), zap.Error(err))
		return h.settle(ctx, entity, "delete", actionresult.Fail(actionresult.GenericFailure))
	}
	if n == 0 {
		return h.settle(ctx, entity, "delete", actionresult.NotFound(missingMsg))
	}
	return h.settle(ctx, entity, "delete", actionresult.OK(okMsg))
}
