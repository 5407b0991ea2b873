package delete_area

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/condohub/reservation-service/internal/api/handlers"
	"github.com/condohub/reservation-service/internal/api/middleware"
	"github.com/condohub/reservation-service/internal/service/areas"
	"github.com/condohub/reservation-service/internal/service/areas/models"
)

const (
	msgInvalidAreaID = "ID de área inválido"
	msgManagerOnly   = "apenas o síndico pode gerenciar áreas"
	msgAreaNotFound  = "área não encontrada"
	msgConfirmNeeded = "exclusão remove todas as reservas da área, envie confirm=true"
	msgMissingActor  = "usuário não identificado"
)

type Handler struct {
	service AreaService
	logger  Logger
}

func NewHandler(service AreaService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/areas/{areaId}?confirm=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("DELETE /areas/{id} - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	areaID, err := strconv.ParseInt(mux.Vars(r)["areaId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /areas/{id} - Invalid area ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAreaID)
		return
	}

	confirm := r.URL.Query().Get("confirm") == "true"

	result, err := h.service.Delete(r.Context(), areaID, confirm, models.Actor{
		ID:      actor.UserID,
		Role:    actor.Role,
		CondoID: actor.CondoID,
	})
	if err != nil {
		switch {
		case errors.Is(err, areas.ErrAreaNotFound):
			h.logger.Warn("DELETE /areas/{id} - Area not found: area_id=%d, condo_id=%d", areaID, actor.CondoID)
			handlers.RespondNotFound(w, msgAreaNotFound)

		case errors.Is(err, areas.ErrAccessDenied):
			h.logger.Warn("DELETE /areas/{id} - Access denied: user_id=%d, role=%s", actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgManagerOnly)

		case errors.Is(err, areas.ErrConfirmationRequired):
			h.logger.Warn("DELETE /areas/{id} - Confirmation missing: area_id=%d", areaID)
			handlers.RespondBadRequest(w, msgConfirmNeeded)

		default:
			h.logger.Error("DELETE /areas/{id} - Failed to delete area: area_id=%d, error=%v", areaID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /areas/{id} - Area deleted: area_id=%d, removed_reservations=%d",
		areaID, result.RemovedReservations)
	handlers.RespondJSON(w, http.StatusOK, result)
}
