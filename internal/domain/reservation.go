package domain

import (
	"time"

	"github.com/condohub/reservation-service/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusRejected  ReservationStatus = "rejected"
)

// Reservation represents a resident's hold on an area for a
// contiguous block of whole hours on a single date.
type Reservation struct {
	ID              int64
	CondoID         int64
	AreaID          int64
	ReservationDate time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString // exclusivo
	RequesterID     int64
	Status          ReservationStatus

	// Denormalized data for history and feeds
	AreaName       string
	RequesterName  string
	ApartmentLabel string

	ViewedByManager   bool
	ViewedByRequester bool

	RejectionReason *string
	RejectedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HoldsSlot reports whether the reservation still blocks its hours.
// Only rejection releases the slot.
func (r *Reservation) HoldsSlot() bool {
	return r.Status != StatusRejected
}

// CoversHour reports whether the hour falls inside [StartTime, EndTime).
func (r *Reservation) CoversHour(hour int) bool {
	return hour >= r.StartTime.Hour() && hour < r.EndTime.Hour()
}

// IsPending reports whether the reservation awaits a manager decision.
func (r *Reservation) IsPending() bool {
	return r.Status == StatusPending
}

// IsRejected reports whether the reservation reached its terminal state.
func (r *Reservation) IsRejected() bool {
	return r.Status == StatusRejected
}

// CanBeApproved reports whether an approval transition is legal.
func (r *Reservation) CanBeApproved() bool {
	return r.Status == StatusPending
}

// CanBeRejected reports whether a rejection transition is legal.
func (r *Reservation) CanBeRejected() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// DurationHours returns the length of the hold in whole hours.
func (r *Reservation) DurationHours() int {
	return r.EndTime.Hour() - r.StartTime.Hour()
}

// ReservationFilter filtro de listagem de reservas do condomínio
type ReservationFilter struct {
	CondoID        int64              // obrigatório
	AreaID         *int64             // opcional, nil = todas as áreas
	StartDate      *time.Time         // opcional, começo do período
	EndDate        *time.Time         // opcional, fim do período
	Status         *ReservationStatus // opcional
	IncludeHistory bool               // incluir reservas passadas e rejeitadas
}
