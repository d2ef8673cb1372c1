package users_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/gracehub/internal/app/features/users"
	"github.com/dalemusser/gracehub/internal/app/system/actionresult"
	"github.com/dalemusser/gracehub/internal/app/system/viewcache"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"github.com/dalemusser/gracehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*users.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return users.NewHandler(db, viewcache.Noop{}, nil, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestListMembers_ExcludesPastorWithAvatars(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateUser(ctx, "Pastor Paul", "paul@example.com", models.RolePastor, "secret1")
	f.CreateUser(ctx, "amani", "amani@example.com", models.RoleMember, "secret1")

	list := h.ListMembers(ctx)
	if len(list) != 1 {
		t.Fatalf("expected 1 member, got %d", len(list))
	}
	if list[0].Email != "amani@example.com" {
		t.Errorf("email = %q", list[0].Email)
	}
	if list[0].ImageURL != "https://placehold.co/40x40.png?text=A" {
		t.Errorf("avatar = %q", list[0].ImageURL)
	}
}

func TestGetPastor(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if h.GetPastor(ctx) != nil {
		t.Fatal("expected nil without a pastor")
	}
	f.CreateUser(ctx, "Pastor Paul", "paul@example.com", models.RolePastor, "secret1")
	if p := h.GetPastor(ctx); p == nil || p.Role != models.RolePastor {
		t.Errorf("pastor = %+v", p)
	}
}

func TestGetUser(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := f.CreateUser(ctx, "Zawadi", "zawadi@example.com", models.RoleMember, "secret1")

	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"by email", "Zawadi@Example.com", true},
		{"by id", u.ID.Hex(), true},
		{"unknown email", "nobody@example.com", false},
		{"unknown id", primitive.NewObjectID().Hex(), false},
		{"garbage", "not-an-id", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.GetUser(ctx, tt.key)
			if (got != nil) != tt.want {
				t.Fatalf("GetUser(%q) = %+v, want found=%v", tt.key, got, tt.want)
			}
			if got == nil {
				return
			}
			if got.Phone != "N/A" {
				t.Errorf("phone = %q, want N/A", got.Phone)
			}
			if !strings.HasPrefix(got.ImageURL, "https://placehold.co/128x128.png") {
				t.Errorf("avatar = %q", got.ImageURL)
			}
		})
	}
}

func TestUpdateProfilePicture(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := f.CreateUser(ctx, "Baraka", "baraka@example.com", models.RoleMember, "secret1")
	pic := "https://example.com/me.png"

	res := h.UpdateProfilePicture(ctx, users.ProfilePictureInput{ID: u.ID.Hex(), ImageURL: &pic})
	if !res.Success || res.Message != "Profile picture updated successfully!" {
		t.Fatalf("set = %+v", res)
	}
	if got := h.GetUser(ctx, u.ID.Hex()); got.ImageURL != pic {
		t.Errorf("image = %q", got.ImageURL)
	}

	res = h.UpdateProfilePicture(ctx, users.ProfilePictureInput{ID: u.ID.Hex()})
	if !res.Success {
		t.Fatalf("clear = %+v", res)
	}
	if got := h.GetUser(ctx, u.ID.Hex()); got.ImageURL == pic {
		t.Error("picture should have been removed")
	}

	bad := "nope"
	res = h.UpdateProfilePicture(ctx, users.ProfilePictureInput{ID: u.ID.Hex(), ImageURL: &bad})
	if res.Success || len(res.Errors["imageUrl"]) == 0 {
		t.Errorf("bad url = %+v", res)
	}

	res = h.UpdateProfilePicture(ctx, users.ProfilePictureInput{ID: primitive.NewObjectID().Hex(), ImageURL: &pic})
	if res.Success || res.Status() != http.StatusNotFound {
		t.Errorf("missing user = %+v", res)
	}
}

func TestDeleteUser(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := f.CreateUser(ctx, "Imani", "imani@example.com", models.RoleMember, "secret1")

	if res := h.DeleteUser(ctx, u.ID.Hex()); !res.Success || res.Message != "User deleted successfully." {
		t.Fatalf("delete = %+v", res)
	}
	if res := h.DeleteUser(ctx, u.ID.Hex()); res.Message != "Could not find user to delete." {
		t.Errorf("second delete = %+v", res)
	}
	if res := h.DeleteUser(ctx, "x"); res.Message != "Invalid user ID." {
		t.Errorf("bad id = %+v", res)
	}
}

func TestRoutes_MemberSeesOnlySelf(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	router := users.Routes(h, testutil.NewSessionManager(t))

	me := f.CreateUser(ctx, "Neema", "neema@example.com", models.RoleMember, "secret1")
	other := f.CreateUser(ctx, "Juma", "juma@example.com", models.RoleMember, "secret1")
	self := testutil.TestUser{ID: me.ID.Hex(), Name: me.Name, Email: me.Email, Role: me.Role}

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/"+me.ID.Hex(), self))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "neema@example.com")

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/"+other.ID.Hex(), self))
	rec.AssertStatus(t, http.StatusForbidden)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"+me.ID.Hex()))
	rec.AssertStatus(t, http.StatusUnauthorized)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/", self))
	rec.AssertStatus(t, http.StatusForbidden)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.PastorUser()))
	rec.AssertStatus(t, http.StatusOK)
}

func TestDatabaseDown(t *testing.T) {
	h := users.NewHandler(testutil.UnreachableDB(t), viewcache.Noop{}, nil, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	id := primitive.NewObjectID().Hex()
	if res := h.UpdateProfilePicture(ctx, users.ProfilePictureInput{ID: id}); res.Success || res.Message != actionresult.GenericFailure {
		t.Errorf("picture = %+v", res)
	}
	if res := h.DeleteUser(ctx, id); res.Success || res.Message != actionresult.GenericFailure {
		t.Errorf("delete = %+v", res)
	}
	if list := h.ListMembers(ctx); list == nil || len(list) != 0 {
		t.Errorf("members = %#v, want empty", list)
	}
	if p := h.GetPastor(ctx); p != nil {
		t.Errorf("pastor = %+v, want nil", p)
	}
	if u := h.GetUser(ctx, "ruth@example.com"); u != nil {
		t.Errorf("user = %+v, want nil", u)
	}
}
