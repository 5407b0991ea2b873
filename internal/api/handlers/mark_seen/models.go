package mark_seen

// MarkSeenRequest corpo da marcação de notificações como vistas
type MarkSeenRequest struct {
	ReservationIDs []int64 `json:"reservationIds"`
}
