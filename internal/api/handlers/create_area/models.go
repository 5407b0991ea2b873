package create_area

import (
	"github.com/condohub/reservation-service/internal/api/middleware"
	"github.com/condohub/reservation-service/internal/service/areas/models"
)

// CreateAreaRequest corpo da requisição de criação de área
type CreateAreaRequest struct {
	Name             string `json:"name"`
	OpenTime         string `json:"openTime"`  // "08:00"
	CloseTime        string `json:"closeTime"` // "22:00"
	RequiresApproval bool   `json:"requiresApproval"`
	MaxDurationHours int    `json:"maxDurationHours"`
}

// ToServiceRequest converte o corpo HTTP na requisição do serviço
func (r *CreateAreaRequest) ToServiceRequest(actor middleware.Actor) *models.CreateAreaRequest {
	return &models.CreateAreaRequest{
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
