// internal/domain/models/creations.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SavedEventIdea is an AI-generated event idea the pastor chose to keep.
type SavedEventIdea struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	CreatedAt   time.Time          `bson:"created_at"`
}

// SermonPoint is one section of a sermon outline.
type SermonPoint struct {
	PointTitle       string   `bson:"point_title" json:"pointTitle"`
	Content          string   `bson:"content" json:"content"`
	SupportingVerses []string `bson:"supporting_verses" json:"supportingVerses"`
}

// SavedSermonOutline is an AI-generated sermon outline the pastor chose to keep.
type SavedSermonOutline struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	SermonTitle string             `bson:"sermon_title"`
	Outline     []SermonPoint      `bson:"outline"`
	CreatedAt   time.Time          `bson:"created_at"`
}
