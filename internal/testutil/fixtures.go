package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/gracehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given role and password. The password
// is hashed at the minimum bcrypt cost to keep tests fast.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role, password string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash password: %v", err)
	}
	u := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameCI:       text.Fold(name),
		Email:        email,
		Role:         role,
		PasswordHash: string(hash),
		JoinedAt:     time.Now().UTC(),
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("create user: %v", err)
	}
	return u
}

// CreateEvent inserts an event on the given date, optionally linked to a teaching.
func (f *Fixtures) CreateEvent(ctx context.Context, title, date string, teachingID *string) models.Event {
	f.t.Helper()

	e := models.Event{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: title + " description",
		Date:        date,
		Time:        "10:00",
		Location:    "Main Sanctuary",
		TeachingID:  teachingID,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("events").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("create event: %v", err)
	}
	return e
}

// CreateTeaching inserts a teaching with a fresh application id.
func (f *Fixtures) CreateTeaching(ctx context.Context, mediaType, body string) models.Teaching {
	f.t.Helper()

	t := models.Teaching{
		ID:         primitive.NewObjectID(),
		TeachingID: uuid.NewString(),
		MediaType:  mediaType,
		MediaURL:   "https://example.com/media",
		CreatedAt:  time.Now().UTC(),
	}
	if body != "" {
		t.Text = &body
	}
	if _, err := f.db.Collection("teachings").InsertOne(ctx, t); err != nil {
		f.t.Fatalf("create teaching: %v", err)
	}
	return t
}

// CreateTeamMember inserts a roster entry.
func (f *Fixtures) CreateTeamMember(ctx context.Context, name, position string) models.TeamMember {
	f.t.Helper()

	m := models.TeamMember{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Position:  position,
		ImageURL:  "https://example.com/" + name + ".png",
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("team_members").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("create team member: %v", err)
	}
	return m
}

// CreateContribution inserts a contribution record.
func (f *Fixtures) CreateContribution(ctx context.Context, ref string, userID *primitive.ObjectID, amount int64, date string) models.Contribution {
	f.t.Helper()

	c := models.Contribution{
		ID:       primitive.NewObjectID(),
		MpesaRef: ref,
		UserID:   userID,
		Amount:   amount,
		Date:     date,
	}
	if _, err := f.db.Collection("contributions").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("create contribution: %v", err)
	}
	return c
}
