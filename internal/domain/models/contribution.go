// internal/domain/models/contribution.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Contribution records a gift received through mobile money. Read-only here.
type Contribution struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty"`
	MpesaRef string              `bson:"mpesa_ref"`
	UserID   *primitive.ObjectID `bson:"user_id,omitempty"`
	Amount   int64               `bson:"amount,omitempty"`
	Date     string              `bson:"date"` // YYYY-MM-DD
}
