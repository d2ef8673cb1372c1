// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a scheduled church gathering.
//
// TeachingID links to Teaching.TeachingID (the application id), never to the
// teaching's _id. The link is cleared when the teaching is deleted.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Date        string             `bson:"date"` // YYYY-MM-DD
	Time        string             `bson:"time"` // HH:MM (24h)
	Location    string             `bson:"location"`
	ImageURL    string             `bson:"image_url,omitempty"`
	TeachingID  *string            `bson:"teaching_id,omitempty"`

	CreatedAt time.Time  `bson:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty"`
}
