package loginstore_test

import (
	"errors"
	"testing"
	"time"

	loginstore "github.com/dalemusser/gracehub/internal/app/store/logins"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"github.com/dalemusser/gracehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loginstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	rec := models.LoginRecord{
		UserID:    userID,
		IP:        "192.168.1.1",
		UserAgent: "curl/8.0",
	}

	if err := store.Create(ctx, rec); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var found models.LoginRecord
	if err := db.Collection("login_records").FindOne(ctx, bson.M{"user_id": userID}).Decode(&found); err != nil {
		t.Fatalf("failed to find login record: %v", err)
	}
	if found.IP != "192.168.1.1" {
		t.Errorf("IP: got %q, want %q", found.IP, "192.168.1.1")
	}
	// CreatedAt should be set automatically
	if found.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Last(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loginstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	if _, err := store.Last(ctx, userID); !errors.Is(err, loginstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	for i, ip := range []string{"10.0.0.1", "10.0.0.3", "10.0.0.2"} {
		at := base.Add(time.Duration([]int{0, 2, 1}[i]) * time.Hour)
		if err := store.Create(ctx, models.LoginRecord{UserID: userID, IP: ip, CreatedAt: at}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	last, err := store.Last(ctx, userID)
	if err != nil {
		t.Fatalf("Last failed: %v", err)
	}
	if last.IP != "10.0.0.3" {
		t.Errorf("expected most recent login from 10.0.0.3, got %q", last.IP)
	}
}

func TestStore_DeleteBefore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loginstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	userID := primitive.NewObjectID()
	for _, age := range []time.Duration{100 * 24 * time.Hour, 91 * 24 * time.Hour, time.Hour} {
		if err := store.Create(ctx, models.LoginRecord{UserID: userID, CreatedAt: now.Add(-age)}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	n, err := store.DeleteBefore(ctx, now.Add(-90*24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore failed: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d, want 2", n)
	}

	left, err := db.Collection("login_records").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if left != 1 {
		t.Errorf("remaining %d, want 1", left)
	}
}
