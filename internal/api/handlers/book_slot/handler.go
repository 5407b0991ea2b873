package book_slot

import (
	"errors"
	"net/http"
	"time"

	"github.com/condohub/reservation-service/internal/api/handlers"
	"github.com/condohub/reservation-service/internal/api/middleware"
	"github.com/condohub/reservation-service/internal/domain"
	bookSlot "github.com/condohub/reservation-service/internal/usecase/book_slot"
)

const (
	msgInvalidBody      = "corpo da requisição inválido"
	msgInvalidDate      = "data inválida, esperado YYYY-MM-DD"
	msgAreaNotFound     = "área não encontrada"
	msgResidentNotFound = "morador não encontrado"
	msgDateInPast       = "não é possível reservar em data passada"
	msgDurationTooLong  = "duração excede o máximo permitido para a área"
	msgOutsideHours     = "horário fora do expediente da área"
	msgSlotInPast       = "o horário de início já passou"
	msgSlotTaken        = "horário indisponível"
	msgInvalidInput     = "dados da reserva inválidos"
	msgMissingActor     = "usuário não identificado"
)

type Handler struct {
	useCase BookSlotUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req BookSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		h.logger.Warn("POST /reservations - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor, date))
	if err != nil {
		switch {
		case errors.Is(err, bookSlot.ErrAreaNotFound):
			h.logger.Warn("POST /reservations - Area not found: area_id=%d", req.AreaID)
			handlers.RespondNotFound(w, msgAreaNotFound)

		case errors.Is(err, bookSlot.ErrResidentNotFound):
			h.logger.Warn("POST /reservations - Requester not found: actor_id=%d", actor.UserID)
			handlers.RespondNotFound(w, msgResidentNotFound)

		case errors.Is(err, bookSlot.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Date in the past: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, bookSlot.ErrDurationTooLong):
			h.logger.Warn("POST /reservations - Duration too long: area_id=%d, duration=%d", req.AreaID, req.DurationHours)
			handlers.RespondBadRequest(w, msgDurationTooLong)

		case errors.Is(err, bookSlot.ErrOutsideOpeningHours):
			h.logger.Warn("POST /reservations - Outside opening hours: area_id=%d, start=%d", req.AreaID, req.StartHour)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, bookSlot.ErrSlotInPast):
			h.logger.Warn("POST /reservations - Slot in the past: date=%s, start=%d", req.Date, req.StartHour)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, bookSlot.ErrSlotTaken):
			h.logger.Warn("POST /reservations - Slot taken: area_id=%d, date=%s, start=%d",
				req.AreaID, req.Date, req.StartHour)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, bookSlot.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to book slot: area_id=%d, error=%v", req.AreaID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%d, area_id=%d, date=%s, status=%s",
		result.ID, result.AreaID, req.Date, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
