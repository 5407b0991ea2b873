package get_manager_feed

import (
	"errors"
	"net/http"

	"github.com/condohub/reservation-service/internal/api/handlers"
	"github.com/condohub/reservation-service/internal/api/middleware"
	"github.com/condohub/reservation-service/internal/service/notifications"
	"github.com/condohub/reservation-service/internal/service/notifications/models"
)

const (
	msgManagerOnly  = "apenas o síndico pode ver este feed"
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

// Handle GET /api/v1/notifications/manager
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /notifications/manager - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	result, err := h.service.GetManagerFeed(r.Context(), models.Actor{
		ID:      actor.UserID,
		Role:    actor.Role,
		CondoID: actor.CondoID,
	})
	if err != nil {
		switch {
		case errors.Is(err, notifications.ErrAccessDenied):
			h.logger.Warn("GET /notifications/manager - Access denied: user_id=%d, role=%s", actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgManagerOnly)

		default:
			h.logger.Error("GET /notifications/manager - Failed to build feed: condo_id=%d, error=%v", actor.CondoID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /notifications/manager - Feed built: condo_id=%d, items=%d", actor.CondoID, len(result.Items))
	handlers.RespondJSON(w, http.StatusOK, result)
}
