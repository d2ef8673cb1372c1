// internal/app/store/contributions/contributionstore.go
package contributionstore

import (
	"context"

	"github.com/dalemusser/gracehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store reads contributions. Records are written by the payment side.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("contributions")}
}

// List returns every contribution, most recent date first.
func (s *Store) List(ctx context.Context) ([]models.Contribution, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Contribution{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
