package book_slot

import (
	"time"

	"github.com/condohub/reservation-service/internal/api/middleware"
	"github.com/condohub/reservation-service/internal/domain"
	bookSlot "github.com/condohub/reservation-service/internal/usecase/book_slot"
)

// BookSlotRequest corpo da criação de reserva
type BookSlotRequest struct {
	AreaID        int64  `json:"areaId"`
	Date          string `json:"date"` // "2026-09-15"
	StartHour     int    `json:"startHour"`
	DurationHours int    `json:"durationHours"`
	RequesterID   *int64 `json:"requesterId,omitempty"` // síndico pode reservar em nome de um morador
}

// ToUseCaseRequest converte o corpo HTTP na requisição do usecase.
// Sem requesterId explícito a reserva é do próprio ator.
func (r *BookSlotRequest) ToUseCaseRequest(actor middleware.Actor, date time.Time) *bookSlot.Request {
	requesterID := actor.UserID
	if r.RequesterID != nil {
		requesterID = *r.RequesterID
	}

	return &bookSlot.Request{
		CondoID:       actor.CondoID,
		AreaID:        r.AreaID,
		RequesterID:   requesterID,
		ActorID:       actor.UserID,
		ActorRole:     actor.Role,
		Date:          date,
		StartHour:     r.StartHour,
		DurationHours: r.DurationHours,
	}
}

// BookSlotResponse dados da reserva criada
type BookSlotResponse struct {
	ID                int64     `json:"id"`
	CondoID           int64     `json:"condoId"`
	AreaID            int64     `json:"areaId"`
	AreaName          string    `json:"areaName"`
	Date              string    `json:"date"`
	StartTime         string    `json:"startTime"`
	EndTime           string    `json:"endTime"`
	RequesterID       int64     `json:"requesterId"`
	RequesterName     string    `json:"requesterName"`
	ApartmentLabel    string    `json:"apartmentLabel"`
	Status            string    `json:"status"`
	ViewedByManager   bool      `json:"viewedByManager"`
	ViewedByRequester bool      `json:"viewedByRequester"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// FromUseCaseResponse converte a resposta do usecase em HTTP response
func FromUseCaseResponse(resp *bookSlot.Response) *BookSlotResponse {
	return &BookSlotResponse{
		ID:                resp.ID,
		CondoID:           resp.CondoID,
		AreaID:            resp.AreaID,
		AreaName:          resp.AreaName,
		Date:              resp.Date.Format(domain.DateFormat),
		StartTime:         resp.StartTime.String(),
		EndTime:           resp.EndTime.String(),
		RequesterID:       resp.RequesterID,
		RequesterName:     resp.RequesterName,
		ApartmentLabel:    resp.ApartmentLabel,
		Status:            resp.Status,
		ViewedByManager:   resp.ViewedByManager,
		ViewedByRequester: resp.ViewedByRequester,
		CreatedAt:         resp.CreatedAt,
		UpdatedAt:         resp.UpdatedAt,
	}
}
