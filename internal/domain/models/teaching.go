// internal/domain/models/teaching.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Media kinds a teaching can carry.
const (
	MediaPhoto = "photo"
	MediaVideo = "video"
	MediaAudio = "audio"
)

// MediaKinds lists the accepted media kinds in display order.
var MediaKinds = []string{MediaPhoto, MediaVideo, MediaAudio}

// Teaching is a sermon or media post. TeachingID is a UUID assigned by the
// application so events can reference it without depending on _id.
type Teaching struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	TeachingID string             `bson:"teaching_id"`
	MediaType  string             `bson:"media_type"`
	MediaURL   string             `bson:"media_url"`
	Text       *string            `bson:"text,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
}
