package txn

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dalemusser/gracehub/internal/app/system/timeouts"
	"github.com/dalemusser/gracehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestIsNotSupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"generic", errors.New("connection reset"), false},
		{"code 20", mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member or mongos"}, true},
		{"code 51", mongo.CommandError{Code: 51}, true},
		{"code 263", mongo.CommandError{Code: 263}, true},
		{"unrelated code", mongo.CommandError{Code: 11000, Message: "E11000 duplicate key"}, false},
		{"wrapped code", fmt.Errorf("create event: %w", mongo.CommandError{Code: 20}), true},
		{"replica set text", errors.New("Transaction requires a REPLICA SET"), true},
		{"session text", errors.New("sessions are not supported by this deployment"), true},
		{"transaction alone", errors.New("transaction aborted"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotSupported(tt.err); got != tt.want {
				t.Errorf("IsNotSupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRun_NilDatabaseUsesFallback(t *testing.T) {
	var usedFallback bool
	err := Run(context.Background(), nil, zap.NewNop(),
		func(context.Context) error {
			t.Fatal("transaction body must not run without a client")
			return nil
		},
		func(context.Context) error {
			usedFallback = true
			return nil
		})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !usedFallback {
		t.Error("expected fallback to run")
	}
}

func TestRun_NilFallbackRerunsBody(t *testing.T) {
	calls := 0
	err := Run(context.Background(), nil, zap.NewNop(), func(context.Context) error {
		calls++
		return nil
	}, nil)
	if err != nil || calls != 1 {
		t.Errorf("Run: err=%v calls=%d, want nil and 1", err, calls)
	}
}

func TestRun_DefaultDeadline(t *testing.T) {
	t.Cleanup(timeouts.Reset)
	timeouts.Configure(timeouts.Config{Long: 3 * time.Second})

	var left time.Duration
	err := Run(context.Background(), nil, zap.NewNop(), nil, func(ctx context.Context) error {
		dl, ok := ctx.Deadline()
		if !ok {
			t.Fatal("expected a deadline on a context that had none")
		}
		left = time.Until(dl)
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if left <= 0 || left > 3*time.Second {
		t.Errorf("deadline in %v, want within the long timeout", left)
	}

	// A caller deadline is kept as is.
	parent, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()
	want, _ := parent.Deadline()
	_ = Run(parent, nil, zap.NewNop(), nil, func(ctx context.Context) error {
		if got, _ := ctx.Deadline(); !got.Equal(want) {
			t.Errorf("deadline = %v, want caller's %v", got, want)
		}
		return nil
	})
}

func TestRun_UnreachableServerFailsFast(t *testing.T) {
	t.Cleanup(timeouts.Reset)
	timeouts.Configure(timeouts.Config{Long: 2 * time.Second})
	db := testutil.UnreachableDB(t)

	insert := func(ctx context.Context) error {
		_, err := db.Collection("events").InsertOne(ctx, bson.M{"title": "Vigil"})
		return err
	}

	start := time.Now()
	err := Run(context.Background(), db, zap.NewNop(), insert, insert)
	if err == nil {
		t.Fatal("expected an error with the server down")
	}
	if took := time.Since(start); took > 15*time.Second {
		t.Errorf("Run took %v with the server down, want it bounded by the long timeout", took)
	}
}
