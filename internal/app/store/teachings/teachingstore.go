// internal/app/store/teachings/teachingstore.go
package teachingstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	eventstore "github.com/dalemusser/gracehub/internal/app/store/events"
	"github.com/dalemusser/gracehub/internal/app/system/txn"
	"github.com/dalemusser/gracehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no teaching has the given application id.
	ErrNotFound = errors.New("teaching not found")
	// ErrDuplicateTeachingID is returned when the application id is taken.
	ErrDuplicateTeachingID = errors.New("a teaching with this id already exists")
)

type Store struct {
	db *mongo.Database
	c  *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("teachings")}
}

// Create inserts a teaching. A blank TeachingID is filled with a new UUID.
func (s *Store) Create(ctx context.Context, t models.Teaching) (models.Teaching, error) {
	t.ID = primitive.NewObjectID()
	if t.TeachingID == "" {
		t.TeachingID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Teaching{}, ErrDuplicateTeachingID
		}
		return models.Teaching{}, err
	}
	return t, nil
}

// List returns every teaching, newest first.
func (s *Store) List(ctx context.Context) ([]models.Teaching, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Teaching{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByTeachingID loads a teaching by its application id.
func (s *Store) GetByTeachingID(ctx context.Context, teachingID string) (*models.Teaching, error) {
	var t models.Teaching
	if err := s.c.FindOne(ctx, bson.M{"teaching_id": teachingID}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// UpdateText replaces the teaching notes.
func (s *Store) UpdateText(ctx context.Context, teachingID, text string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"teaching_id": teachingID}, bson.M{"$set": bson.M{"text": text}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes only the teaching document. Returns the number deleted.
// Use DeleteAndUnlink when events may still reference it.
func (s *Store) Delete(ctx context.Context, teachingID string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"teaching_id": teachingID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteAndUnlink clears teaching_id on referencing events and deletes the
// teaching atomically when the deployment supports transactions. Otherwise
// events are unlinked first so a crash leaves at worst an orphan teaching,
// never an event pointing at nothing.
func (s *Store) DeleteAndUnlink(ctx context.Context, log *zap.Logger, teachingID string) error {
	events := eventstore.New(s.db)

	body := func(ctx context.Context) error {
		if _, err := events.UnlinkTeaching(ctx, teachingID); err != nil {
			return fmt.Errorf("unlink events: %w", err)
		}
		n, err := s.Delete(ctx, teachingID)
		if err != nil {
			return fmt.Errorf("delete teaching: %w", err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	}

	return txn.Run(ctx, s.db, log, body, body)
}

// RepairDanglingLinks unsets teaching_id on events whose teaching no longer
// exists. Returns the number of events repaired.
func (s *Store) RepairDanglingLinks(ctx context.Context) (int64, error) {
	events := eventstore.New(s.db)
	linked, err := events.LinkedTeachingIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("linked teaching ids: %w", err)
	}
	if len(linked) == 0 {
		return 0, nil
	}

	found, err := s.c.Distinct(ctx, "teaching_id", bson.M{"teaching_id": bson.M{"$in": linked}})
	if err != nil {
		return 0, fmt.Errorf("existing teachings: %w", err)
	}
	exists := make(map[string]struct{}, len(found))
	for _, v := range found {
		if id, ok := v.(string); ok {
			exists[id] = struct{}{}
		}
	}

	var total int64
	for _, id := range linked {
		if _, ok := exists[id]; ok {
			continue
		}
		n, err := events.UnlinkTeaching(ctx, id)
		if err != nil {
			return total, fmt.Errorf("unlink %s: %w", id, err)
		}
		total += n
	}
	return total, nil
}
