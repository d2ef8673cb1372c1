// internal/app/features/users/types.go
package users

import (
	"time"

	"github.com/dalemusser/gracehub/internal/app/system/placeholder"
	"github.com/dalemusser/gracehub/internal/domain/models"
)

// UserView is a user as clients see it. Credentials never leave the store.
type UserView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
	ImageURL string `json:"imageUrl"`
	JoinedAt string `json:"joinedAt"`
}

// ProfilePictureInput sets or, with a nil ImageURL, clears a picture.
type ProfilePictureInput struct {
	ID       string  `json:"id" validate:"required,objectid" label:"User ID"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,url" label:"Image URL"`
}

// ToView converts u, falling back to a lettered avatar of avatarSize pixels.
func ToView(u models.User, avatarSize int) UserView {
	img := placeholder.Avatar(u.Name, avatarSize)
	if u.ImageURL != nil && *u.ImageURL != "" {
		img = *u.ImageURL
	}
	return UserView{
		ID:       u.ID.Hex(),
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		Role:     u.Role,
		ImageURL: img,
		JoinedAt: u.JoinedAt.UTC().Format(time.RFC3339),
	}
}
