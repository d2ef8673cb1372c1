package bootstrap

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dalemusser/gracehub/internal/app/system/timeouts"
	"github.com/dalemusser/gracehub/internal/app/system/viewcache"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"github.com/dalemusser/gracehub/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:           "mongodb://localhost:27017",
		MongoDatabase:      "gracehub_test",
		LinkRepairSchedule: "@every 1h",
		ResetTokenTTL:      time.Hour,
	}
}

func TestEnsurePastor_PromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "John", "john@church.org", models.RoleMember, "secret123")

	if err := ensurePastor(ctx, DBDeps{MongoDatabase: db}, viewcache.Noop{}, "John@Church.org", testLogger()); err != nil {
		t.Fatalf("ensurePastor failed: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"email": "john@church.org"}).Decode(&user); err != nil {
		t.Fatalf("failed to find user: %v", err)
	}
	if user.Role != models.RolePastor {
		t.Errorf("expected role %q, got %q", models.RolePastor, user.Role)
	}
}

func TestEnsurePastor_PromotionClearsMemberViews(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	views := viewcache.NewRedis(rdb)

	fixtures.CreateUser(ctx, "John", "john@church.org", models.RoleMember, "secret123")
	for _, p := range []string{viewcache.PathPastorDashboard, viewcache.PathPastorMembers, viewcache.PathHome} {
		if err := views.Set(ctx, p, "stale", time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	if err := ensurePastor(ctx, DBDeps{MongoDatabase: db}, views, "john@church.org", testLogger()); err != nil {
		t.Fatalf("ensurePastor failed: %v", err)
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Errorf("expected member views cleared after promotion, still have %v", keys)
	}

	// A second run changes nothing and leaves fresh views in place.
	if err := views.Set(ctx, viewcache.PathHome, "fresh", time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := ensurePastor(ctx, DBDeps{MongoDatabase: db}, views, "john@church.org", testLogger()); err != nil {
		t.Fatalf("ensurePastor failed: %v", err)
	}
	if len(mr.Keys()) != 1 {
		t.Error("expected views untouched when the role was already pastor")
	}
}

func TestEnsurePastor_AlreadyPastor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "John", "john@church.org", models.RolePastor, "secret123")

	if err := ensurePastor(ctx, DBDeps{MongoDatabase: db}, viewcache.Noop{}, "john@church.org", testLogger()); err != nil {
		t.Fatalf("ensurePastor failed: %v", err)
	}
}

func TestEnsurePastor_NotRegistered(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := ensurePastor(ctx, DBDeps{MongoDatabase: db}, viewcache.Noop{}, "nobody@church.org", testLogger()); err != nil {
		t.Fatalf("expected nil for unregistered pastor, got %v", err)
	}

	n, err := db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no users to be created, got %d", n)
	}
}

func TestEnsurePastor_EmptyEmail(t *testing.T) {
	// No database access happens when the email is blank.
	if err := ensurePastor(context.Background(), DBDeps{}, viewcache.Noop{}, "", testLogger()); err != nil {
		t.Errorf("expected nil for empty email, got %v", err)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"valid", func(*AppConfig) {}, ""},
		{"bad mongo uri", func(c *AppConfig) { c.MongoURI = "postgres://nope" }, "invalid MongoDB URI"},
		{"bad redis url", func(c *AppConfig) { c.RedisURL = "http://localhost:6379" }, "invalid Redis URL"},
		{"valid redis url", func(c *AppConfig) { c.RedisURL = "redis://localhost:6379/0" }, ""},
		{"bad schedule", func(c *AppConfig) { c.LinkRepairSchedule = "every hour" }, "invalid link_repair_schedule"},
		{"zero reset ttl", func(c *AppConfig) { c.ResetTokenTTL = 0 }, "reset_token_ttl"},
		{"negative timeout", func(c *AppConfig) { c.Timeouts.Long = -time.Second }, "timeout_long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAppConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(&config.CoreConfig{}, cfg, testLogger())
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestBuildServices_NoRedisNoAI(t *testing.T) {
	s, err := buildServices(context.Background(), validAppConfig(), DBDeps{}, testLogger())
	if err != nil {
		t.Fatalf("buildServices: %v", err)
	}
	if _, ok := s.views.(viewcache.Noop); !ok {
		t.Errorf("expected no-op view cache, got %T", s.views)
	}
	if s.aiConfigured {
		t.Error("expected assistant to be unconfigured")
	}
	if s.ai == nil || s.mail == nil || s.scripture == nil || s.mpesa == nil {
		t.Error("expected every service to be built")
	}
}

func TestBuildServices_WithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	s, err := buildServices(context.Background(), validAppConfig(), DBDeps{Redis: rdb}, testLogger())
	if err != nil {
		t.Fatalf("buildServices: %v", err)
	}
	if _, ok := s.views.(*viewcache.Redis); !ok {
		t.Errorf("expected redis view cache, got %T", s.views)
	}
	if jobLocker(DBDeps{Redis: rdb}) == nil {
		t.Error("expected a redis job lock")
	}
}

func TestScheduledJobs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s, err := buildServices(context.Background(), validAppConfig(), DBDeps{MongoDatabase: db}, testLogger())
	if err != nil {
		t.Fatalf("buildServices: %v", err)
	}

	names := func() map[string]bool {
		out := map[string]bool{}
		for _, j := range scheduledJobs(validAppConfig(), DBDeps{MongoDatabase: db}, s, testLogger()) {
			if out[j.Name] {
				t.Errorf("duplicate job name %q", j.Name)
			}
			out[j.Name] = true
		}
		return out
	}

	for _, j := range scheduledJobs(validAppConfig(), DBDeps{MongoDatabase: db}, s, testLogger()) {
		if want := strings.HasPrefix(j.Name, "ratelimit-sweep-"); j.Local != want {
			t.Errorf("job %q Local = %v, want %v", j.Name, j.Local, want)
		}
	}

	got := names()
	for _, want := range []string{"link-repair", "reset-token-cleanup", "login-history-prune", "ratelimit-sweep-login", "ratelimit-sweep-accounts"} {
		if !got[want] {
			t.Errorf("missing job %q", want)
		}
	}
	if got["daily-quote"] {
		t.Error("daily-quote should only run when the assistant is configured")
	}

	s.aiConfigured = true
	if !names()["daily-quote"] {
		t.Error("expected daily-quote job when the assistant is configured")
	}
}

func TestStartup_AppliesTimeouts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(timeouts.Reset)

	cfg := validAppConfig()
	cfg.Timeouts = timeouts.Config{Long: 42 * time.Second, Upstream: 9 * time.Second}
	deps := DBDeps{MongoDatabase: db}
	if err := Startup(context.Background(), &config.CoreConfig{}, cfg, deps, testLogger()); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		currentServices().scheduler.Stop(ctx)
	})

	got := timeouts.Current()
	if got.Long != 42*time.Second || got.Upstream != 9*time.Second {
		t.Errorf("timeouts = %+v, want long 42s and upstream 9s", got)
	}
	if got.Short != timeouts.DefaultShort {
		t.Errorf("unset short timeout = %v, want default %v", got.Short, timeouts.DefaultShort)
	}
}
