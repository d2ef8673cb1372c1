// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/gracehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no event matches.
var ErrNotFound = errors.New("event not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("events")}
}

// Create inserts an event and returns it with its ID and CreatedAt set.
func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	e.ID = primitive.NewObjectID()
	e.CreatedAt = time.Now().UTC()
	e.UpdatedAt = nil
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// List returns every event ordered by date then time, soonest first.
func (s *Store) List(ctx context.Context) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Event{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// EventUpdate carries the mutable event fields. Nil fields are left unchanged.
type EventUpdate struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	Location    *string
	ImageURL    *string
}

// Update applies a partial $set and refreshes UpdatedAt.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd EventUpdate) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Date != nil {
		set["date"] = *upd.Date
	}
	if upd.Time != nil {
		set["time"] = *upd.Time
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.ImageURL != nil {
		set["image_url"] = *upd.ImageURL
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an event. The linked teaching, if any, is left alone.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// UnlinkTeaching clears teaching_id on every event pointing at teachingID.
func (s *Store) UnlinkTeaching(ctx context.Context, teachingID string) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"teaching_id": teachingID},
		bson.M{"$unset": bson.M{"teaching_id": ""}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// LinkedTeachingIDs returns the distinct teaching ids referenced by events.
func (s *Store) LinkedTeachingIDs(ctx context.Context) ([]string, error) {
	vals, err := s.c.Distinct(ctx, "teaching_id", bson.M{"teaching_id": bson.M{"$exists": true}})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
