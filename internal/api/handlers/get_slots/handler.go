package get_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/condohub/reservation-service/internal/api/handlers"
	"github.com/condohub/reservation-service/internal/api/middleware"
	"github.com/condohub/reservation-service/internal/domain"
	getSlots "github.com/condohub/reservation-service/internal/usecase/get_slots"
)

const (
	msgMissingCondo  = "condomínio não identificado"
	msgInvalidAreaID = "ID de área inválido"
	msgInvalidDate   = "data inválida, esperado YYYY-MM-DD"
	msgAreaNotFound  = "área não encontrada"
)

type Handler struct {
	useCase GetSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/areas/{areaId}/slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	condoID, ok := middleware.CondoFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /areas/{id}/slots - Missing condo scope")
		handlers.RespondBadRequest(w, msgMissingCondo)
		return
	}

	areaID, err := strconv.ParseInt(mux.Vars(r)["areaId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /areas/{id}/slots - Invalid area ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAreaID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /areas/{id}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSlots.Request{
		CondoID: condoID,
		AreaID:  areaID,
		Date:    date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrAreaNotFound):
			h.logger.Warn("GET /areas/{id}/slots - Area not found: area_id=%d", areaID)
			handlers.RespondNotFound(w, msgAreaNotFound)

		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /areas/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /areas/{id}/slots - Failed to build grid: area_id=%d, error=%v", areaID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /areas/{id}/slots - Grid built: area_id=%d, date=%s, slots=%d",
		areaID, date.Format(domain.DateFormat), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
