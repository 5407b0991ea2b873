package reject_reservation

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
	msgInvalidBody       = "corpo da requisição inválido"
	msgInvalidID         = "ID de reserva inválido"
	msgNotFound          = "reserva não encontrada"
	msgManagerOnly       = "apenas o síndico pode rejeitar reservas"
	msgBlankReason       = "o motivo da rejeição é obrigatório"
	msgInvalidTransition = "reservas rejeitadas não podem ser alteradas"
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

// Handle POST /api/v1/reservations/{reservationId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations/{id}/reject - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/reject - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req RejectReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.Reject(r.Context(), reservationID, &models.RejectRequest{
		Actor: models.Actor{
			ID:      actor.UserID,
			Role:    actor.Role,
			CondoID: actor.CondoID,
		},
		Reason: req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/reject - Not found: id=%d, condo_id=%d", reservationID, actor.CondoID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("POST /reservations/{id}/reject - Access denied: user_id=%d, role=%s", actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgManagerOnly)

		case errors.Is(err, reservations.ErrBlankReason):
			h.logger.Warn("POST /reservations/{id}/reject - Blank or invalid reason: id=%d", reservationID)
			handlers.RespondBadRequest(w, msgBlankReason)

		case errors.Is(err, reservations.ErrInvalidTransition):
			h.logger.Warn("POST /reservations/{id}/reject - Invalid transition: id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		default:
			h.logger.Error("POST /reservations/{id}/reject - Failed to reject: id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/reject - Reservation rejected: id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
