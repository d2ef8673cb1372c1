// internal/app/features/teachings/types.go
package teachings

import (
	"time"

	"github.com/dalemusser/gracehub/internal/domain/models"
)

// CreateTeachingInput is a standalone teaching post.
type CreateTeachingInput struct {
	MediaType string `json:"mediaType" validate:"required,oneof=photo video audio" label:"Media type"`
	MediaURL  string `json:"mediaUrl" validate:"omitempty,url" label:"Media URL"`
	Text      string `json:"text" validate:"max=20000" label:"Text"`
}

// TeachingView is a teaching as clients see it; ID is the application id.
type TeachingView struct {
	ID        string  `json:"id"`
	MediaType string  `json:"mediaType"`
	MediaURL  string  `json:"mediaUrl"`
	Text      *string `json:"text,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// ToView maps a stored teaching to its client shape.
func ToView(t models.Teaching) TeachingView {
	return TeachingView{
		ID:        t.TeachingID,
		MediaType: t.MediaType,
		MediaURL:  t.MediaURL,
		Text:      t.Text,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
	}
}
