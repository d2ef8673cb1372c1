// internal/app/store/creations/creationstore.go
package creationstore

import (
	"context"
	"time"

	"github.com/dalemusser/gracehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store keeps the AI-generated ideas and sermon outlines the pastor saved.
type Store struct {
	ideas   *mongo.Collection
	sermons *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		ideas:   db.Collection("saved_event_ideas"),
		sermons: db.Collection("saved_sermon_outlines"),
	}
}

var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

func (s *Store) SaveIdea(ctx context.Context, idea models.SavedEventIdea) (models.SavedEventIdea, error) {
	idea.ID = primitive.NewObjectID()
	idea.CreatedAt = time.Now().UTC()
	if _, err := s.ideas.InsertOne(ctx, idea); err != nil {
		return models.SavedEventIdea{}, err
	}
	return idea, nil
}

func (s *Store) ListIdeas(ctx context.Context) ([]models.SavedEventIdea, error) {
	cur, err := s.ideas.Find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.SavedEventIdea{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteIdea returns the number of documents deleted (0 or 1).
func (s *Store) DeleteIdea(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.ideas.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) SaveSermon(ctx context.Context, o models.SavedSermonOutline) (models.SavedSermonOutline, error) {
	o.ID = primitive.NewObjectID()
	o.CreatedAt = time.Now().UTC()
	for i := range o.Outline {
		if o.Outline[i].SupportingVerses == nil {
			o.Outline[i].SupportingVerses = []string{}
		}
	}
	if _, err := s.sermons.InsertOne(ctx, o); err != nil {
		return models.SavedSermonOutline{}, err
	}
	return o, nil
}

func (s *Store) ListSermons(ctx context.Context) ([]models.SavedSermonOutline, error) {
	cur, err := s.sermons.Find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.SavedSermonOutline{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteSermon returns the number of documents deleted (0 or 1).
func (s *Store) DeleteSermon(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.sermons.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
