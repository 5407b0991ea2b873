package models

import (
	"errors"
	"time"

	"github.com/condohub/reservation-service/internal/domain"
)

var (
	// ErrInvalidStatus retornado quando o status não existe
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Modelos de requisição

// Actor identifica quem executa a operação
type Actor struct {
	ID      int64
	Role    string // manager | resident
	CondoID int64
}

// IsManager informa se o ator é síndico
func (a Actor) IsManager() bool {
	return a.Role == domain.RoleManager
}

// GetCondoReservationsRequest listagem de reservas do condomínio
type GetCondoReservationsRequest struct {
	Actor          Actor
	AreaID         *int64
	StartDate      *time.Time
	EndDate        *time.Time
	Status         *string
	IncludeHistory bool
}

// ToDomainFilter converte a requisição no filtro de domínio
func (r *GetCondoReservationsRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		CondoID:        r.Actor.CondoID,
		AreaID:         r.AreaID,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		IncludeHistory: r.IncludeHistory,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// RejectRequest rejeição de reserva pelo síndico
type RejectRequest struct {
	Actor  Actor
	Reason string
}

// CancelRequest cancelamento de reserva
type CancelRequest struct {
	Actor  Actor
	Reason string // obrigatório quando o síndico cancela reserva alheia
}

// Response modelos de resposta

// ReservationResponse dados de uma reserva
type ReservationResponse struct {
	ID                int64  `json:"id"`
	CondoID           int64  `json:"condoId"`
	AreaID            int64  `json:"areaId"`
	AreaName          string `json:"areaName"`
	Date              string `json:"date"`      // "2026-03-14"
	StartTime         string `json:"startTime"` // "10:00"
	EndTime           string `json:"endTime"`   // "12:00"
	RequesterID       int64  `json:"requesterId"`
	RequesterName     string `json:"requesterName"`
	ApartmentLabel    string `json:"apartmentLabel"`
	Status            string `json:"status"`
	ViewedByManager   bool   `json:"viewedByManager"`
	ViewedByRequester bool   `json:"viewedByRequester"`

	RejectionReason *string `json:"rejectionReason,omitempty"`
	RejectedAt      *string `json:"rejectedAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse lista de reservas
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Conversões

// FromDomainReservation converte o modelo de domínio em DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                r.ID,
		CondoID:           r.CondoID,
		AreaID:            r.AreaID,
		AreaName:          r.AreaName,
		Date:              r.ReservationDate.Format(domain.DateFormat),
		StartTime:         r.StartTime.String(),
		EndTime:           r.EndTime.String(),
		RequesterID:       r.RequesterID,
		RequesterName:     r.RequesterName,
		ApartmentLabel:    r.ApartmentLabel,
		Status:            string(r.Status),
		ViewedByManager:   r.ViewedByManager,
		ViewedByRequester: r.ViewedByRequester,
		RejectionReason:   r.RejectionReason,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}

	if r.RejectedAt != nil {
		formatted := r.RejectedAt.Format(time.RFC3339)
		resp.RejectedAt = &formatted
	}

	return resp
}

// FromDomainReservationList converte a lista de domínio em DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	out := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, *FromDomainReservation(r))
	}
	return &ReservationListResponse{Reservations: out}
}

// ToDomainReservationStatus valida e converte o status textual
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(status) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusRejected:
		return domain.ReservationStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
