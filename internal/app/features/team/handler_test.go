package team_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/gracehub/internal/app/features/team"
	"github.com/dalemusser/gracehub/internal/app/system/viewcache"
	"github.com/dalemusser/gracehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*team.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return team.NewHandler(db, viewcache.Noop{}, nil, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestSaveTeamMember_Validation(t *testing.T) {
	h, _ := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	res := h.SaveTeamMember(ctx, team.SaveInput{Name: "A", Position: "", ImageURL: "nope"})
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Message != "Please correct the errors and try again." {
		t.Errorf("message = %q", res.Message)
	}
	want := map[string]string{
		"name":     "Name is required.",
		"position": "Position is required.",
		"imageUrl": "A valid image URL is required.",
	}
	for field, msg := range want {
		if got := res.Errors[field]; len(got) == 0 || got[0] != msg {
			t.Errorf("errors[%s] = %v, want %q", field, got, msg)
		}
	}
}

func TestSaveTeamMember_AddThenUpdate(t *testing.T) {
	h, _ := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	in := team.SaveInput{Name: "Grace Wanjiku", Position: "Worship Leader", ImageURL: "https://example.com/g.png"}
	res := h.SaveTeamMember(ctx, in)
	if !res.Success || res.Message != "Team member added successfully!" {
		t.Fatalf("add = %+v", res)
	}

	in.ID = res.ID
	in.Position = "Choir Director"
	res = h.SaveTeamMember(ctx, in)
	if !res.Success || res.Message != "Team member updated successfully!" {
		t.Fatalf("update = %+v", res)
	}

	list := h.ListTeamMembers(ctx)
	if len(list) != 1 || list[0].Position != "Choir Director" {
		t.Errorf("list = %+v", list)
	}
}

func TestSaveTeamMember_UpdateMissing(t *testing.T) {
	h, _ := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	res := h.SaveTeamMember(ctx, team.SaveInput{
		ID: primitive.NewObjectID().Hex(), Name: "Ghost", Position: "Usher", ImageURL: "https://example.com/x.png",
	})
	if res.Success || res.Status() != http.StatusNotFound {
		t.Errorf("result = %+v", res)
	}
}

func TestSaveTeamMember_NonObjectIDInserts(t *testing.T) {
	h, _ := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	res := h.SaveTeamMember(ctx, team.SaveInput{ID: "new", Name: "Otieno", Position: "Usher", ImageURL: "https://example.com/o.png"})
	if !res.Success || res.Message != "Team member added successfully!" {
		t.Errorf("result = %+v", res)
	}
}

func TestListAndDelete(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m := f.CreateTeamMember(ctx, "Achieng", "Deacon")
	f.CreateTeamMember(ctx, "Kamau", "Elder")

	if list := h.ListTeamMembers(ctx); len(list) != 2 {
		t.Fatalf("len = %d", len(list))
	}
	if res := h.DeleteTeamMember(ctx, m.ID.Hex()); !res.Success || res.Message != "Team member deleted successfully." {
		t.Errorf("delete = %+v", res)
	}
	if res := h.DeleteTeamMember(ctx, m.ID.Hex()); res.Message != "Could not find team member to delete." {
		t.Errorf("second delete = %+v", res)
	}
	if res := h.DeleteTeamMember(ctx, "zzz"); res.Message != "Invalid team member ID." {
		t.Errorf("bad id = %+v", res)
	}
}

func TestRoutes_PublicListPastorWrites(t *testing.T) {
	h, _ := newHandler(t)
	router := team.Routes(h, testutil.NewSessionManager(t))

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusOK)

	body := team.SaveInput{Name: "Wairimu", Position: "Secretary", ImageURL: "https://example.com/w.png"}

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.WithUser(testutil.NewJSONRequest(t, http.MethodPost, "/", body), testutil.MemberUser()))
	rec.AssertStatus(t, http.StatusForbidden)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.WithUser(testutil.NewJSONRequest(t, http.MethodPost, "/", body), testutil.PastorUser()))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Team member added successfully!")
}
