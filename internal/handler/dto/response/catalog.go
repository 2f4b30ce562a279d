package response

import (
	"time"

	"geargo/internal/usecase/queries"

	"github.com/google/uuid"
)

type ItemResponse struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        uuid.UUID `json:"ownerId"`
	Kind           string    `json:"kind"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Features       []string  `json:"features"`
	Location       string    `json:"location"`
	DailyRatePaise int64     `json:"dailyRatePaise"`
	Available      bool      `json:"available"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func FromItemView(rm *queries.ItemView) *ItemResponse {
	return &ItemResponse{
		ID:             rm.ID,
		OwnerID:        rm.OwnerID,
		Kind:           rm.Kind,
		Name:           rm.Name,
		Category:       rm.Category,
		Features:       rm.Features,
		Location:       rm.Location,
		DailyRatePaise: rm.DailyRatePaise,
		Available:      rm.Available,
		CreatedAt:      rm.CreatedAt,
		UpdatedAt:      rm.UpdatedAt,
	}
}
