package models

import (
	"time"

	"github.com/condohub/reservation-service/internal/domain"
	"github.com/condohub/reservation-service/pkg/types"
)

// Modelos de requisição

// Actor identifica quem executa a operação
type Actor struct {
	ID      int64
	Role    string
	CondoID int64
}

// IsManager informa se o ator é síndico
func (a Actor) IsManager() bool {
	return a.Role == domain.RoleManager
}

// CreateAreaRequest criação de área comum
type CreateAreaRequest struct {
	Actor            Actor
	Name             string
	OpenTime         string // "08:00"
	CloseTime        string // "22:00"
	RequiresApproval bool
	MaxDurationHours int
}

// UpdateAreaRequest atualização parcial de área
type UpdateAreaRequest struct {
	Actor            Actor
	Name             *string
	OpenTime         *string
	CloseTime        *string
	RequiresApproval *bool
	MaxDurationHours *int
}

// ToDomainUpdate converte a requisição no update de domínio.
// Os horários já devem ter passado pela validação.
func (r *UpdateAreaRequest) ToDomainUpdate() domain.AreaUpdate {
	upd := domain.AreaUpdate{
		Name:             r.Name,
		RequiresApproval: r.RequiresApproval,
		MaxDurationHours: r.MaxDurationHours,
	}

	if r.OpenTime != nil {
		ts := types.TimeString(*r.OpenTime)
		upd.OpenTime = &ts
	}
	if r.CloseTime != nil {
		ts := types.TimeString(*r.CloseTime)
		upd.CloseTime = &ts
	}

	return upd
}

// Modelos de resposta

// AreaResponse dados de uma área
type AreaResponse struct {
	ID               int64     `json:"id"`
	CondoID          int64     `json:"condoId"`
	Name             string    `json:"name"`
	OpenTime         string    `json:"openTime"`
	CloseTime        string    `json:"closeTime"`
	RequiresApproval bool      `json:"requiresApproval"`
	MaxDurationHours int       `json:"maxDurationHours"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// AreaListResponse lista de áreas
type AreaListResponse struct {
	Areas []AreaResponse `json:"areas"`
}

// DeleteAreaResponse resultado da exclusão
type DeleteAreaResponse struct {
	RemovedReservations int64 `json:"removedReservations"`
}

// FromDomainArea converte o modelo de domínio em DTO
func FromDomainArea(a *domain.Area) *AreaResponse {
	if a == nil {
		return nil
	}
	return &AreaResponse{
		ID:               a.ID,
		CondoID:          a.CondoID,
		Name:             a.Name,
		OpenTime:         a.OpenTime.String(),
		CloseTime:        a.CloseTime.String(),
		RequiresApproval: a.RequiresApproval,
		MaxDurationHours: a.MaxDurationHours,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// FromDomainAreaList converte a lista de domínio em DTO
func FromDomainAreaList(areas []*domain.Area) *AreaListResponse {
	out := make([]AreaResponse, 0, len(areas))
	for _, a := range areas {
		out = append(out, *FromDomainArea(a))
	}
	return &AreaListResponse{Areas: out}
}
