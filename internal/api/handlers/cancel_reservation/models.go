package cancel_reservation

// CancelReservationRequest corpo opcional do cancelamento.
// O motivo só é exigido quando o síndico cancela reserva de terceiro.
type CancelReservationRequest struct {
	Reason string `json:"reason"`
}
