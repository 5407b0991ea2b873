package mark_seen

import (
	"errors"
	"net/http"

	"github.com/condohub/reservation-service/internal/api/handlers"
	"github.com/condohub/reservation-service/internal/api/middleware"
	"github.com/condohub/reservation-service/internal/service/notifications"
	"github.com/condohub/reservation-service/internal/service/notifications/models"
)

const (
	msgInvalidBody  = "corpo da requisição inválido"
	msgEmptyIDs     = "lista de reservas vazia"
	msgMissingActor = "usuário não identificado"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/notifications/seen
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /notifications/seen - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req MarkSeenRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /notifications/seen - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	err := h.service.MarkSeen(r.Context(), &models.MarkSeenRequest{
		Actor: models.Actor{
			ID:      actor.UserID,
			Role:    actor.Role,
			CondoID: actor.CondoID,
		},
		ReservationIDs: req.ReservationIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, notifications.ErrInvalidInput):
			h.logger.Warn("POST /notifications/seen - Empty reservation list: user_id=%d", actor.UserID)
			handlers.RespondBadRequest(w, msgEmptyIDs)

		default:
			h.logger.Error("POST /notifications/seen - Failed to mark seen: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /notifications/seen - Marked %d notifications: user_id=%d", len(req.ReservationIDs), actor.UserID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
