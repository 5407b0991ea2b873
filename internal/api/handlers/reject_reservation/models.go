package reject_reservation

// RejectReservationRequest corpo da rejeição de reserva
type RejectReservationRequest struct {
	Reason string `json:"reason"`
}
