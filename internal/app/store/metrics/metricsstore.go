package metricsstore

import (
	"context"

	"github.com/dalemusser/gracehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Counts is the set of totals shown on the pastor's overview.
type Counts struct {
	Members        int64 `json:"members"`
	Events         int64 `json:"events"`
	Teachings      int64 `json:"teachings"`
	TeamMembers    int64 `json:"teamMembers"`
	Contributions  int64 `json:"contributions"`
	AmountReceived int64 `json:"amountReceived"`
}

// FetchDashboardCounts returns the high-level counts used by the pastor dashboard.
// Intentionally tolerant: on error it returns 0 for that counter.
func FetchDashboardCounts(ctx context.Context, db *mongo.Database) Counts {
	var out Counts

	if n, err := db.Collection("users").CountDocuments(ctx, bson.M{"role": models.RoleMember}); err == nil {
		out.Members = n
	}
	if n, err := db.Collection("events").CountDocuments(ctx, bson.M{}); err == nil {
		out.Events = n
	}
	if n, err := db.Collection("teachings").CountDocuments(ctx, bson.M{}); err == nil {
		out.Teachings = n
	}
	if n, err := db.Collection("team_members").CountDocuments(ctx, bson.M{}); err == nil {
		out.TeamMembers = n
	}
	if n, err := db.Collection("contributions").CountDocuments(ctx, bson.M{}); err == nil {
		out.Contributions = n
	}

	// amount received
	cur, err := db.Collection("contributions").Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	})
	if err == nil {
		var rows []struct {
			Total int64 `bson:"total"`
		}
		if err := cur.All(ctx, &rows); err == nil && len(rows) > 0 {
			out.AmountReceived = rows[0].Total
		}
	}

	return out
}
