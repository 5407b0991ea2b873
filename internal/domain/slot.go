package domain

import "github.com/condohub/reservation-service/pkg/types"

// SlotStatus is the availability state of one hour of an area's day.
type SlotStatus string

const (
	SlotFree          SlotStatus = "free"
	SlotPendingHold   SlotStatus = "pending_hold"
	SlotConfirmedHold SlotStatus = "confirmed_hold"
	SlotPast          SlotStatus = "past"
)

// Slot represents one hour of an area's availability grid.
type Slot struct {
	Hour      int
	StartTime types.TimeString
	Status    SlotStatus
}

// IsBookable reports whether a new reservation may start at this hour.
func (s *Slot) IsBookable() bool {
	return s.Status == SlotFree
}
