// internal/app/features/events/actions.go
package events

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/gracehub/internal/app/features/teachings"
	eventstore "github.com/dalemusser/gracehub/internal/app/store/events"
	teachingstore "github.com/dalemusser/gracehub/internal/app/store/teachings"
	"github.com/dalemusser/gracehub/internal/app/system/actionresult"
	"github.com/dalemusser/gracehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/gracehub/internal/app/system/inputval"
	"github.com/dalemusser/gracehub/internal/app/system/placeholder"
	"github.com/dalemusser/gracehub/internal/app/system/txn"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	msgNeitherPart     = "Please fill out either the event details or the teaching details."
	msgCreatedBoth     = "Event and Teaching created successfully!"
	msgCreatedEvent    = "Event created successfully!"
	msgCreatedTeaching = "Teaching created successfully!"
	msgInvalidID       = "Invalid event ID."
	msgUpdated         = "Event updated successfully!"
	msgUpdateNotFound  = "Could not find event to update."
	msgDeleted         = "Event deleted successfully."
	msgDeleteNotFound  = "Could not find event to delete."
)

// cleanCreate strips markup before validation so a field that is only
// markup fails its required rule.
func cleanCreate(in *CreateEventInput) {
	in.Title = htmlsanitize.Plain(in.Title)
	in.Description = htmlsanitize.Plain(in.Description)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Location = htmlsanitize.Plain(in.Location)
	in.TeachingText = htmlsanitize.Plain(in.TeachingText)
	in.TeachingMediaType = strings.ToLower(strings.TrimSpace(in.TeachingMediaType))
	in.TeachingMediaURL = strings.TrimSpace(in.TeachingMediaURL)
}

// CreateEvent creates an event, a teaching, or both. When both are given
// the teaching is written first and the event links to it.
func (h *Handler) CreateEvent(ctx context.Context, in CreateEventInput) actionresult.Result {
	cleanCreate(&in)
	hasEvent := in.eventFields.any()
	hasTeaching := in.teachingFields.present()

	if !hasEvent && !hasTeaching {
		res := inputval.Validate(&in.eventFields)
		out := actionresult.Invalid(res)
		out.Message = msgNeitherPart
		return h.settle(ctx, "create", out)
	}

	v := &inputval.Result{}
	if hasEvent {
		v.Errors = append(v.Errors, inputval.Validate(&in.eventFields).Errors...)
	}
	v.Errors = append(v.Errors, inputval.Validate(&in.teachingFields).Errors...)
	if v.HasErrors() {
		return h.settle(ctx, "create", actionresult.Invalid(v))
	}

	var teaching *models.Teaching
	if hasTeaching {
		kind := in.TeachingMediaType
		if kind == "" {
			kind = models.MediaPhoto
		}
		mediaURL := in.TeachingMediaURL
		if mediaURL == "" {
			mediaURL = placeholder.Media(kind)
		}
		teaching = &models.Teaching{
			TeachingID: uuid.NewString(),
			MediaType:  kind,
			MediaURL:   mediaURL,
		}
		if in.TeachingText != "" {
			text := in.TeachingText
			teaching.Text = &text
		}
	}

	var event *models.Event
	if hasEvent {
		event = &models.Event{
			Title:       in.Title,
			Description: in.Description,
			Date:        in.Date,
			Time:        in.Time,
			Location:    in.Location,
			ImageURL:    placeholder.Image,
		}
		if teaching != nil {
			tid := teaching.TeachingID
			event.TeachingID = &tid
		}
	}

	created, err := h.writeEventAndTeaching(ctx, event, teaching)
	if err != nil {
		h.Log.Error("create event failed", zap.Error(err))
		return h.settle(ctx, "create", actionresult.Fail(actionresult.GenericFailure))
	}

	msg := msgCreatedTeaching
	switch {
	case event != nil && teaching != nil:
		msg = msgCreatedBoth
	case event != nil:
		msg = msgCreatedEvent
	}
	out := actionresult.OK(msg)
	if event != nil {
		out = out.WithID(created.ID.Hex())
	} else {
		out = out.WithID(teaching.TeachingID)
	}
	return h.settle(ctx, "create", out)
}

// writeEventAndTeaching inserts the teaching then the event inside a
// transaction. Without transaction support it runs the same inserts in
// order and deletes the teaching again if the event insert fails.
func (h *Handler) writeEventAndTeaching(ctx context.Context, event *models.Event, teaching *models.Teaching) (models.Event, error) {
	events := eventstore.New(h.DB)
	tstore := teachingstore.New(h.DB)

	var created models.Event
	insert := func(ctx context.Context) error {
		if teaching != nil {
			if _, err := tstore.Create(ctx, *teaching); err != nil {
				return fmt.Errorf("insert teaching: %w", err)
			}
		}
		if event != nil {
			e, err := events.Create(ctx, *event)
			if err != nil {
				return fmt.Errorf("insert event: %w", err)
			}
			created = e
		}
		return nil
	}

	if event == nil || teaching == nil {
		err := insert(ctx)
		return created, err
	}

	fallback := func(ctx context.Context) error {
		if _, err := tstore.Create(ctx, *teaching); err != nil {
			return fmt.Errorf("insert teaching: %w", err)
		}
		e, err := events.Create(ctx, *event)
		if err != nil {
			if _, derr := tstore.Delete(ctx, teaching.TeachingID); derr != nil {
				h.Log.Error("compensating teaching delete failed",
					zap.String("teaching_id", teaching.TeachingID), zap.Error(derr))
			}
			return fmt.Errorf("insert event: %w", err)
		}
		created = e
		return nil
	}

	err := txn.Run(ctx, h.DB, h.Log, insert, fallback)
	return created, err
}

// ListEvents returns events soonest first. Failures yield an empty list.
func (h *Handler) ListEvents(ctx context.Context) []EventView {
	list, err := eventstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("list events failed", zap.Error(err))
		return []EventView{}
	}
	out := make([]EventView, 0, len(list))
	for _, e := range list {
		out = append(out, toView(e))
	}
	return out
}

// GetEventByID returns nil when the id is malformed or no event matches.
func (h *Handler) GetEventByID(ctx context.Context, id string) *EventDetail {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil
	}
	e, err := eventstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		if !errors.Is(err, eventstore.ErrNotFound) {
			h.Log.Error("get event failed", zap.String("event_id", id), zap.Error(err))
		}
		return nil
	}

	d := &EventDetail{EventView: toView(*e)}
	if e.TeachingID != nil {
		t, err := teachingstore.New(h.DB).GetByTeachingID(ctx, *e.TeachingID)
		switch {
		case err == nil:
			tv := teachings.ToView(*t)
			d.Teaching = &tv
		case !errors.Is(err, teachingstore.ErrNotFound):
			h.Log.Warn("load linked teaching failed", zap.String("teaching_id", *e.TeachingID), zap.Error(err))
		}
	}
	return d
}

// UpdateEvent replaces the event fields and, when both a teaching id and
// text are given, the linked teaching's text. The two writes run
// concurrently and are not atomic.
func (h *Handler) UpdateEvent(ctx context.Context, in UpdateEventInput) actionresult.Result {
	in.ID = strings.TrimSpace(in.ID)
	in.Title = htmlsanitize.Plain(in.Title)
	in.Description = htmlsanitize.Plain(in.Description)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Location = htmlsanitize.Plain(in.Location)
	in.TeachingID = strings.TrimSpace(in.TeachingID)
	in.TeachingText = htmlsanitize.Plain(in.TeachingText)

	if v := inputval.Validate(&in); v.HasErrors() {
		return h.settle(ctx, "update", actionresult.Invalid(v))
	}
	oid, err := primitive.ObjectIDFromHex(in.ID)
	if err != nil {
		return h.settle(ctx, "update", actionresult.Fail(msgInvalidID))
	}

	upd := eventstore.EventUpdate{
		Title:       &in.Title,
		Description: &in.Description,
		Date:        &in.Date,
		Time:        &in.Time,
		Location:    &in.Location,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return eventstore.New(h.DB).Update(gctx, oid, upd)
	})
	if in.TeachingID != "" && in.TeachingText != "" {
		g.Go(func() error {
			err := teachingstore.New(h.DB).UpdateText(gctx, in.TeachingID, in.TeachingText)
			if errors.Is(err, teachingstore.ErrNotFound) {
				h.Log.Warn("linked teaching missing on update", zap.String("teaching_id", in.TeachingID))
				return nil
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, eventstore.ErrNotFound) {
			return h.settle(ctx, "update", actionresult.NotFound(msgUpdateNotFound))
		}
		h.Log.Error("update event failed", zap.String("event_id", in.ID), zap.Error(err))
		return h.settle(ctx, "update", actionresult.Fail(actionresult.GenericFailure))
	}
	return h.settle(ctx, "update", actionresult.OK(msgUpdated).WithID(in.ID))
}

// DeleteEvent removes an event. A linked teaching is kept.
func (h *Handler) DeleteEvent(ctx context.Context, id string) actionresult.Result {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return h.settle(ctx, "delete", actionresult.Fail(msgInvalidID))
	}
	n, err := eventstore.New(h.DB).Delete(ctx, oid)
	if err != nil {
		h.Log.Error("delete event failed", zap.String("event_id", id), zap.Error(err))
		return h.settle(ctx, "delete", actionresult.Fail(actionresult.GenericFailure))
	}
	if n == 0 {
		return h.settle(ctx, "delete", actionresult.NotFound(msgDeleteNotFound))
	}
	return h.settle(ctx, "delete", actionresult.OK(msgDeleted))
}

func toView(e models.Event) EventView {
	img := e.ImageURL
	if img == "" {
		img = placeholder.Image
	}
	return EventView{
		ID:          e.ID.Hex(),
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		ImageURL:    img,
		TeachingID:  e.TeachingID,
	}
}
