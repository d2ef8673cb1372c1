// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can hold. Exactly one pastor is expected but not enforced.
const (
	RoleMember = "member"
	RolePastor = "pastor"
)

// User is a registered member or the pastor.
//
// NOTE:
//   - Email is unique (enforced by the users.email unique index).
//   - ResetToken/ResetTokenExpiry are only present while a password reset
//     is outstanding; redemption unsets both.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	NameCI       string             `bson:"name_ci"` // lowercase, diacritics-stripped
	Email        string             `bson:"email"`
	Phone        string             `bson:"phone,omitempty"`
	Role         string             `bson:"role"` // member | pastor
	PasswordHash string             `bson:"password_hash"`

	ResetToken       *string    `bson:"reset_token,omitempty"`
	ResetTokenExpiry *time.Time `bson:"reset_token_expiry,omitempty"`

	ImageURL *string   `bson:"image_url,omitempty"`
	JoinedAt time.Time `bson:"joined_at"`
}
