package list_areas

import (
	"net/http"

	"github.com/condohub/reservation-service/internal/api/handlers"
	"github.com/condohub/reservation-service/internal/api/middleware"
)

const msgMissingCondo = "condomínio não identificado"

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

// Handle GET /api/v1/areas
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	condoID, ok := middleware.CondoFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /areas - Missing condo scope")
		handlers.RespondBadRequest(w, msgMissingCondo)
		return
	}

	result, err := h.service.List(r.Context(), condoID)
	if err != nil {
		h.logger.Error("GET /areas - Failed to list areas: condo_id=%d, error=%v", condoID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /areas - Listed %d areas for condo_id=%d", len(result.Areas), condoID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
