package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/gracehub/internal/app/system/validators"
	"github.com/dalemusser/gracehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestEnsureAll_IdempotentAndCreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 2; i++ {
		if err := validators.EnsureAll(ctx, db, zap.NewNop()); err != nil {
			t.Fatalf("EnsureAll run %d failed: %v", i+1, err)
		}
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	have := make(map[string]bool)
	for _, n := range names {
		have[n] = true
	}
	for _, want := range []string{"users", "events", "teachings", "team_members", "saved_event_ideas", "saved_sermon_outlines", "contributions"} {
		if !have[want] {
			t.Errorf("expected collection %q to exist", want)
		}
	}
}

func TestValidators_RejectBadDocuments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	tests := []struct {
		name string
		coll string
		doc  bson.M
	}{
		{"user without email", "users", bson.M{"name": "Ann", "role": "member", "password_hash": "x", "joined_at": time.Now()}},
		{"user with unknown role", "users", bson.M{"name": "Ann", "email": "a@b.co", "role": "admin", "password_hash": "x", "joined_at": time.Now()}},
		{"event with blank title", "events", bson.M{"title": " ", "description": "d", "date": "2025-01-01", "time": "10:00", "location": "Hall"}},
		{"event with bad date", "events", bson.M{"title": "t", "description": "d", "date": "Jan 1", "time": "10:00", "location": "Hall"}},
		{"teaching with bad media", "teachings", bson.M{"teaching_id": "abc", "media_type": "pdf", "media_url": "u", "created_at": time.Now()}},
		{"sermon without points", "saved_sermon_outlines", bson.M{"sermon_title": "t", "outline": bson.A{}, "created_at": time.Now()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := db.Collection(tt.coll).InsertOne(ctx, tt.doc); err == nil {
				t.Errorf("expected validation error inserting into %s", tt.coll)
			}
		})
	}
}

func TestValidators_AcceptValidDocuments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	docs := map[string]bson.M{
		"users":     {"name": "Ann", "email": "ann@example.com", "role": "member", "password_hash": "x", "joined_at": time.Now()},
		"events":    {"title": "Youth night", "description": "Games", "date": "2025-03-01", "time": "18:00", "location": "Hall"},
		"teachings": {"teaching_id": "t-1", "media_type": "audio", "media_url": "https://example.com/a.mp3", "created_at": time.Now()},
	}
	for coll, doc := range docs {
		if _, err := db.Collection(coll).InsertOne(ctx, doc); err != nil {
			t.Errorf("insert valid %s failed: %v", coll, err)
		}
	}
}
