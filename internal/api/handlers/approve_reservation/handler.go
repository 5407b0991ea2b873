package approve_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/condohub/reservation-service/internal/api/handlers"
	"github.com/condohub/reservation-service/internal/api/middleware"
	"github.com/condohub/reservation-service/internal/service/reservations"
	"github.com/condohub/reservation-service/internal/service/reservations/models"
)

const (
	msgInvalidID         = "ID de reserva inválido"
	msgNotFound          = "reserva não encontrada"
	msgManagerOnly       = "apenas o síndico pode aprovar reservas"
	msgInvalidTransition = "apenas reservas pendentes podem ser aprovadas"
	msgMissingActor      = "usuário não identificado"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations/{id}/approve - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/approve - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.Approve(r.Context(), reservationID, models.Actor{
		ID:      actor.UserID,
		Role:    actor.Role,
		CondoID: actor.CondoID,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/approve - Not found: id=%d, condo_id=%d", reservationID, actor.CondoID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("POST /reservations/{id}/approve - Access denied: user_id=%d, role=%s", actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgManagerOnly)

		case errors.Is(err, reservations.ErrInvalidTransition):
			h.logger.Warn("POST /reservations/{id}/approve - Invalid transition: id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		default:
			h.logger.Error("POST /reservations/{id}/approve - Failed to approve: id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/approve - Reservation approved: id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
