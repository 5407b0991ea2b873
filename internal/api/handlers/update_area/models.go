package update_area

import (
	"github.com/condohub/reservation-service/internal/api/middleware"
	"github.com/condohub/reservation-service/internal/service/areas/models"
)

// UpdateAreaRequest corpo da atualização parcial de área.
// Campos omitidos mantêm o valor atual.
type UpdateAreaRequest struct {
	Name             *string `json:"name,omitempty"`
	OpenTime         *string `json:"openTime,omitempty"`
	CloseTime        *string `json:"closeTime,omitempty"`
	RequiresApproval *bool   `json:"requiresApproval,omitempty"`
	MaxDurationHours *int    `json:"maxDurationHours,omitempty"`
}

// ToServiceRequest converte o corpo HTTP na requisição do serviço
func (r *UpdateAreaRequest) ToServiceRequest(actor middleware.Actor) *models.UpdateAreaRequest {
	return &models.UpdateAreaRequest{
		Actor: models.Actor{
			ID:      actor.UserID,
			Role:    actor.Role,
			CondoID: actor.CondoID,
		},
		Name:             r.Name,
		OpenTime:         r.OpenTime,
		CloseTime:        r.CloseTime,
		RequiresApproval: r.RequiresApproval,
		MaxDurationHours: r.MaxDurationHours,
	}
}
