// internal/app/features/creations/types.go
package creations

import (
	"time"

	"github.com/dalemusser/gracehub/internal/domain/models"
)

type SaveIdeaInput struct {
	Title       string `json:"title" validate:"required,max=200" label:"Title"`
	Description string `json:"description" validate:"required,max=5000" label:"Description"`
}

type SermonPointInput struct {
	PointTitle       string   `json:"pointTitle" validate:"required,max=200" label:"Point title"`
	Content          string   `json:"content" validate:"required,max=10000" label:"Content"`
	SupportingVerses []string `json:"supportingVerses"`
}

type SaveSermonInput struct {
	SermonTitle string             `json:"sermonTitle" validate:"required,max=200" label:"Sermon title"`
	Outline     []SermonPointInput `json:"outline" validate:"required,min=1,dive" label:"Outline"`
}

type IdeaView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

type SermonView struct {
	ID          string               `json:"id"`
	SermonTitle string               `json:"sermonTitle"`
	Outline     []models.SermonPoint `json:"outline"`
	CreatedAt   string               `json:"createdAt"`
}

func ideaView(i models.SavedEventIdea) IdeaView {
	return IdeaView{
		ID:          i.ID.Hex(),
		Title:       i.Title,
		Description: i.Description,
		CreatedAt:   i.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func sermonView(s models.SavedSermonOutline) SermonView {
	outline := s.Outline
	if outline == nil {
		outline = []models.SermonPoint{}
	}
	return SermonView{
		ID:          s.ID.Hex(),
		SermonTitle: s.SermonTitle,
		Outline:     outline,
		CreatedAt:   s.CreatedAt.UTC().Format(time.RFC3339),
	}
}
