package update_area

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/condohub/reservation-service/internal/api/handlers"
	"github.com/condohub/reservation-service/internal/api/middleware"
	"github.com/condohub/reservation-service/internal/service/areas"
)

const (
	msgInvalidBody   = "corpo da requisição inválido"
	msgInvalidAreaID = "ID de área inválido"
	msgManagerOnly   = "apenas o síndico pode gerenciar áreas"
	msgInvalidInput  = "dados da área inválidos"
	msgAreaNotFound  = "área não encontrada"
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

// Handle PUT /api/v1/areas/{areaId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("PUT /areas/{id} - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	areaID, err := strconv.ParseInt(mux.Vars(r)["areaId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /areas/{id} - Invalid area ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAreaID)
		return
	}

	var req UpdateAreaRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /areas/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.Update(r.Context(), areaID, req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, areas.ErrAreaNotFound):
			h.logger.Warn("PUT /areas/{id} - Area not found: area_id=%d, condo_id=%d", areaID, actor.CondoID)
			handlers.RespondNotFound(w, msgAreaNotFound)

		case errors.Is(err, areas.ErrAccessDenied):
			h.logger.Warn("PUT /areas/{id} - Access denied: user_id=%d, role=%s", actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgManagerOnly)

		case errors.Is(err, areas.ErrInvalidInput):
			h.logger.Warn("PUT /areas/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /areas/{id} - Failed to update area: area_id=%d, error=%v", areaID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /areas/{id} - Area updated: id=%d, condo_id=%d", result.ID, result.CondoID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
