package cancel_reservation

import (
	"errors"
	"io"
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
	msgAccessDenied      = "sem permissão para cancelar esta reserva"
	msgBlankReason       = "o motivo do cancelamento é obrigatório"
	msgInvalidTransition = "reservas rejeitadas não podem ser canceladas"
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

// Handle DELETE /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("DELETE /reservations/{id} - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	// Corpo é opcional: morador cancelando a própria reserva não manda nada
	var req CancelReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("DELETE /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	err = h.service.Cancel(r.Context(), reservationID, &models.CancelRequest{
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
			h.logger.Warn("DELETE /reservations/{id} - Not found: id=%d, condo_id=%d", reservationID, actor.CondoID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("DELETE /reservations/{id} - Access denied: id=%d, user_id=%d", reservationID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, reservations.ErrBlankReason):
			h.logger.Warn("DELETE /reservations/{id} - Blank or invalid reason: id=%d", reservationID)
			handlers.RespondBadRequest(w, msgBlankReason)

		case errors.Is(err, reservations.ErrInvalidTransition):
			h.logger.Warn("DELETE /reservations/{id} - Invalid transition: id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		default:
			h.logger.Error("DELETE /reservations/{id} - Failed to cancel: id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id} - Reservation cancelled: id=%d, actor_id=%d", reservationID, actor.UserID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
