package request

import (
	"geargo/internal/usecase/commands"
	"geargo/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateItemRequest struct {
	Kind           string   `json:"kind" binding:"required,oneof=car gear"`
	Name           string   `json:"name" binding:"required,max=255"`
	Category       string   `json:"category" binding:"required"`
	Features       []string `json:"features"`
	Location       string   `json:"location" binding:"required"`
	DailyRatePaise int64    `json:"daily_rate_paise" binding:"required,gt=0"`
}

func (r CreateItemRequest) ToInput(ownerID uuid.UUID) commands.CreateItemInput {
	return commands.CreateItemInput{
		OwnerID:        ownerID,
		Kind:           r.Kind,
		Name:           r.Name,
		Category:       r.Category,
		Features:       r.Features,
		Location:       r.Location,
		DailyRatePaise: r.DailyRatePaise,
	}
}

type ListItemsQuery struct {
	Kind     *string `form:"kind" binding:"omitempty,oneof=car gear"`
	Category *string `form:"category"`
	Location *string `form:"location"`
}

func (q ListItemsQuery) ToFilter() queries.ItemFilter {
	return queries.ItemFilter{
		Kind:     q.Kind,
		Category: q.Category,
		Location: q.Location,
	}
}
