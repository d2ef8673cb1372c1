package eventstore_test

import (
	"errors"
	"testing"

	eventstore "github.com/dalemusser/gracehub/internal/app/store/events"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"github.com/dalemusser/gracehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strPtr(s string) *string { return &s }

func newEvent(title, date, tm string) models.Event {
	return models.Event{
		Title:       title,
		Description: "desc",
		Date:        date,
		Time:        tm,
		Location:    "Main hall",
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e := newEvent("Prayer", "2025-06-01", "09:00")
	e.TeachingID = strPtr("t-1")
	created, err := store.Create(ctx, e)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID || created.CreatedAt.IsZero() {
		t.Fatalf("expected ID and CreatedAt to be set: %+v", created)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "Prayer" || got.TeachingID == nil || *got.TeachingID != "t-1" {
		t.Errorf("GetByID = %+v", got)
	}

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, eventstore.ErrNotFound) {
		t.Errorf("missing: err = %v, want ErrNotFound", err)
	}
}

func TestStore_List_SortedByDateThenTime(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, e := range []models.Event{
		newEvent("C", "2025-06-02", "08:00"),
		newEvent("B", "2025-06-01", "18:30"),
		newEvent("A", "2025-06-01", "07:15"),
	} {
		if _, err := store.Create(ctx, e); err != nil {
			t.Fatalf("Create %s: %v", e.Title, err)
		}
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	var got string
	for _, e := range list {
		got += e.Title
	}
	if got != "ABC" {
		t.Errorf("order = %q, want ABC", got)
	}
}

func TestStore_UpdatePartial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, _ := store.Create(ctx, newEvent("Old", "2025-06-01", "09:00"))

	if err := store.Update(ctx, created.ID, eventstore.EventUpdate{Title: strPtr("New")}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ := store.GetByID(ctx, created.ID)
	if got.Title != "New" || got.Location != "Main hall" || got.UpdatedAt == nil {
		t.Errorf("after update: %+v", got)
	}

	err := store.Update(ctx, primitive.NewObjectID(), eventstore.EventUpdate{Title: strPtr("x")})
	if !errors.Is(err, eventstore.ErrNotFound) {
		t.Errorf("missing: err = %v, want ErrNotFound", err)
	}
}

func TestStore_DeleteAndUnlink(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := newEvent("A", "2025-06-01", "09:00")
	a.TeachingID = strPtr("t-1")
	b := newEvent("B", "2025-06-02", "09:00")
	b.TeachingID = strPtr("t-1")
	ca, _ := store.Create(ctx, a)
	_, _ = store.Create(ctx, b)

	ids, err := store.LinkedTeachingIDs(ctx)
	if err != nil || len(ids) != 1 || ids[0] != "t-1" {
		t.Fatalf("LinkedTeachingIDs = %v, %v", ids, err)
	}

	n, err := store.UnlinkTeaching(ctx, "t-1")
	if err != nil || n != 2 {
		t.Fatalf("UnlinkTeaching = %d, %v; want 2", n, err)
	}

	deleted, err := store.Delete(ctx, ca.ID)
	if err != nil || deleted != 1 {
		t.Fatalf("Delete = %d, %v", deleted, err)
	}
	deleted, _ = store.Delete(ctx, ca.ID)
	if deleted != 0 {
		t.Errorf("second delete removed %d", deleted)
	}
}
