package get_area

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
	msgMissingCondo  = "condomínio não identificado"
	msgInvalidAreaID = "ID de área inválido"
	msgAreaNotFound  = "área não encontrada"
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

// Handle GET /api/v1/areas/{areaId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	condoID, ok := middleware.CondoFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /areas/{id} - Missing condo scope")
		handlers.RespondBadRequest(w, msgMissingCondo)
		return
	}

	areaID, err := strconv.ParseInt(mux.Vars(r)["areaId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /areas/{id} - Invalid area ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAreaID)
		return
	}

	result, err := h.service.GetByID(r.Context(), areaID, condoID)
	if err != nil {
		switch {
		case errors.Is(err, areas.ErrAreaNotFound):
			h.logger.Warn("GET /areas/{id} - Area not found: area_id=%d, condo_id=%d", areaID, condoID)
			handlers.RespondNotFound(w, msgAreaNotFound)

		default:
			h.logger.Error("GET /areas/{id} - Failed to get area: area_id=%d, error=%v", areaID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /areas/{id} - Area fetched: area_id=%d", areaID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
