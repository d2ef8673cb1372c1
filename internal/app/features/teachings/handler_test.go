package teachings_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/gracehub/internal/app/features/teachings"
	"github.com/dalemusser/gracehub/internal/app/system/actionresult"
	"github.com/dalemusser/gracehub/internal/app/system/placeholder"
	"github.com/dalemusser/gracehub/internal/app/system/viewcache"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"github.com/dalemusser/gracehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*teachings.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return teachings.NewHandler(db, viewcache.Noop{}, nil, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestCreateTeaching(t *testing.T) {
	h, _ := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	res := h.CreateTeaching(ctx, teachings.CreateTeachingInput{MediaType: "Audio", Text: "  Psalm 23  "})
	if !res.Success || res.ID == "" {
		t.Fatalf("result = %+v", res)
	}

	got := h.GetTeachingByID(ctx, res.ID)
	if got == nil {
		t.Fatal("teaching not found after create")
	}
	if got.MediaType != models.MediaAudio || got.MediaURL != placeholder.Audio {
		t.Errorf("media = %s %s", got.MediaType, got.MediaURL)
	}
	if got.Text == nil || *got.Text != "Psalm 23" {
		t.Errorf("text = %v", got.Text)
	}
}

func TestCreateTeaching_Validation(t *testing.T) {
	h, _ := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	res := h.CreateTeaching(ctx, teachings.CreateTeachingInput{MediaType: "gif", MediaURL: "not a url"})
	if res.Success {
		t.Fatal("expected failure")
	}
	if len(res.Errors["mediaType"]) == 0 || len(res.Errors["mediaUrl"]) == 0 {
		t.Errorf("errors = %v", res.Errors)
	}
}

func TestListTeachings_NewestFirst(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if list := h.ListTeachings(ctx); list == nil || len(list) != 0 {
		t.Fatalf("empty list = %v", list)
	}

	first := f.CreateTeaching(ctx, models.MediaPhoto, "first")
	second := f.CreateTeaching(ctx, models.MediaVideo, "second")

	list := h.ListTeachings(ctx)
	if len(list) != 2 {
		t.Fatalf("len = %d", len(list))
	}
	if list[0].ID != second.TeachingID || list[1].ID != first.TeachingID {
		t.Errorf("order = %s, %s", list[0].ID, list[1].ID)
	}
}

func TestDeleteTeaching_UnlinksEvents(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tc := f.CreateTeaching(ctx, models.MediaPhoto, "linked")
	ev := f.CreateEvent(ctx, "Service", "2025-07-06", &tc.TeachingID)

	res := h.DeleteTeaching(ctx, tc.TeachingID)
	if !res.Success || res.Message != "Teaching deleted successfully." {
		t.Fatalf("result = %+v", res)
	}

	var got models.Event
	if err := f.DB().Collection("events").FindOne(ctx, bson.M{"_id": ev.ID}).Decode(&got); err != nil {
		t.Fatalf("event should survive: %v", err)
	}
	if got.TeachingID != nil {
		t.Errorf("event still links %q", *got.TeachingID)
	}

	res = h.DeleteTeaching(ctx, tc.TeachingID)
	if res.Success || res.Message != "Could not find teaching to delete." {
		t.Errorf("second delete = %+v", res)
	}
	if res.Status() != http.StatusNotFound {
		t.Errorf("status = %d", res.Status())
	}
}

func TestRoutes(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	router := teachings.Routes(h, testutil.NewSessionManager(t))

	tc := f.CreateTeaching(ctx, models.MediaPhoto, "public")

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"+tc.TeachingID))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "public")

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/missing"))
	rec.AssertStatus(t, http.StatusNotFound)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodDelete, "/"+tc.TeachingID))
	rec.AssertStatus(t, http.StatusUnauthorized)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAuthenticatedRequest(http.MethodDelete, "/"+tc.TeachingID, testutil.PastorUser()))
	rec.AssertStatus(t, http.StatusOK)
}

func TestDatabaseDown(t *testing.T) {
	h := teachings.NewHandler(testutil.UnreachableDB(t), viewcache.Noop{}, nil, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if res := h.CreateTeaching(ctx, teachings.CreateTeachingInput{MediaType: models.MediaAudio, Text: "Psalm 23"}); res.Success || res.Message != actionresult.GenericFailure {
		t.Errorf("create = %+v", res)
	}
	if res := h.DeleteTeaching(ctx, "t-1"); res.Success || res.Message != actionresult.GenericFailure {
		t.Errorf("delete = %+v", res)
	}
	if list := h.ListTeachings(ctx); list == nil || len(list) != 0 {
		t.Errorf("list = %#v, want empty", list)
	}
	if v := h.GetTeachingByID(ctx, "t-1"); v != nil {
		t.Errorf("get = %+v, want nil", v)
	}
}
