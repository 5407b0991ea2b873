package domain

import "time"

// FeedItem is one entry of a notification feed, projected from a
// reservation's current state. Feeds are derived on read, nothing is
// stored besides the viewed flags on the reservation itself.
type FeedItem struct {
	ReservationID int64
	Title         string
	Description   string
	Urgent        bool
	CreatedAt     time.Time
}
