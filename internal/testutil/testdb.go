package testutil

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/gracehub/internal/app/system/indexes"
	"github.com/dalemusser/gracehub/internal/app/system/validators"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const defaultTestMongoURI = "mongodb://localhost:27017"

var (
	clientOnce sync.Once
	client     *mongo.Client
	clientErr  error
)

func sharedClient() (*mongo.Client, error) {
	clientOnce.Do(func() {
		uri := os.Getenv("GRACEHUB_TEST_MONGO_URI")
		if uri == "" {
			uri = defaultTestMongoURI
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(2*time.Second))
		if err != nil {
			clientErr = err
			return
		}
		if err := c.Ping(ctx, nil); err != nil {
			_ = c.Disconnect(context.Background())
			clientErr = err
			return
		}
		client = c
	})
	return client, clientErr
}

// TestClient returns the shared test client, skipping the test when MongoDB
// is unreachable.
func TestClient(t *testing.T) *mongo.Client {
	t.Helper()
	c, err := sharedClient()
	if err != nil {
		t.Skipf("MongoDB not available (set GRACEHUB_TEST_MONGO_URI): %v", err)
	}
	return c
}

// SetupTestDB creates a throwaway database with the production collections,
// validators, and indexes, and drops it when the test finishes.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	c := TestClient(t)

	name := "gracehub_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	db := c.Database(name)

	ctx, cancel := TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("ensure validators: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
	})
	return db
}

// TestContext returns a context with a generous timeout for store calls.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 15*time.Second)
}

// UnreachableDB returns a database handle whose client points at a closed
// port. Every operation fails after a short server selection timeout, which
// lets tests exercise the database-down paths without a running server.
func UnreachableDB(t *testing.T) *mongo.Database {
	t.Helper()
	c, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:1/?directConnection=true").
		SetServerSelectionTimeout(200*time.Millisecond).
		SetConnectTimeout(200*time.Millisecond))
	if err != nil {
		t.Fatalf("connect unreachable client: %v", err)
	}
	t.Cleanup(func() { _ = c.Disconnect(context.Background()) })
	return c.Database("gracehub_unreachable")
}
