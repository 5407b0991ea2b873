package domain

import (
	"time"

	"github.com/condohub/reservation-service/pkg/types"
)

// Area represents a reservable common area of a condominium
// (party hall, barbecue deck, sports court and the like).
type Area struct {
	ID               int64
	CondoID          int64
	Name             string
	OpenTime         types.TimeString // começo do expediente, sempre hora cheia
	CloseTime        types.TimeString // fim do expediente (exclusivo), sempre hora cheia
	RequiresApproval bool
	MaxDurationHours int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OpenHours returns the number of reservable hours in the day.
func (a *Area) OpenHours() int {
	return a.CloseTime.Hour() - a.OpenTime.Hour()
}

// ContainsWindow reports whether [startHour, startHour+duration) lies
// inside the area's operating hours.
func (a *Area) ContainsWindow(startHour, durationHours int) bool {
	return startHour >= a.OpenTime.Hour() &&
		startHour+durationHours <= a.CloseTime.Hour()
}

// AreaUpdate carries the optional fields of a partial area update.
// Nil fields keep their current value.
type AreaUpdate struct {
	Name             *string
	OpenTime         *types.TimeString
	CloseTime        *types.TimeString
	RequiresApproval *bool
	MaxDurationHours *int
}

// IsEmpty reports whether the update changes nothing.
func (u *AreaUpdate) IsEmpty() bool {
	return u.Name == nil &&
		u.OpenTime == nil &&
		u.CloseTime == nil &&
		u.RequiresApproval == nil &&
		u.MaxDurationHours == nil
}
