// internal/app/features/team/types.go
package team

import "github.com/dalemusser/gracehub/internal/domain/models"

// SaveInput adds a member, or updates one when ID holds a valid ObjectID.
type SaveInput struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"min=2" msg:"Name is required."`
	Position string `json:"position" validate:"min=2" msg:"Position is required."`
	ImageURL string `json:"imageUrl" validate:"required,url" msg:"A valid image URL is required."`
}

type MemberView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	ImageURL string `json:"imageUrl"`
}

func ToView(m models.TeamMember) MemberView {
	return MemberView{ID: m.ID.Hex(), Name: m.Name, Position: m.Position, ImageURL: m.ImageURL}
}
