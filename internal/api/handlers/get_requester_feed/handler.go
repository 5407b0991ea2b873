package get_requester_feed

import (
	"net/http"

	"github.com/condohub/reservation-service/internal/api/handlers"
	"github.com/condohub/reservation-service/internal/api/middleware"
	"github.com/condohub/reservation-service/internal/service/notifications/models"
)

const msgMissingActor = "usuário não identificado"

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

// Handle GET /api/v1/notifications/requester
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /notifications/requester - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	result, err := h.service.GetRequesterFeed(r.Context(), models.Actor{
		ID:      actor.UserID,
		Role:    actor.Role,
		CondoID: actor.CondoID,
	})
	if err != nil {
		h.logger.Error("GET /notifications/requester - Failed to build feed: user_id=%d, error=%v", actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /notifications/requester - Feed built: user_id=%d, items=%d", actor.UserID, len(result.Items))
	handlers.RespondJSON(w, http.StatusOK, result)
}
