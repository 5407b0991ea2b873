package domain

// Actor roles carried by the auth headers
const (
	RoleManager  = "manager"
	RoleResident = "resident"
)

// Business validation constants
const (
	MinDurationHours         = 1
	MaxAreaNameLength        = 100
	MaxRejectionReasonLength = 300
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ApartmentFallbackLabel rotula reservas feitas pela administração,
// que não tem apartamento
const ApartmentFallbackLabel = "Admin"

// HoldStatuses lista os status que ainda bloqueiam horários.
// Usado nos filtros de disponibilidade.
var HoldStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
