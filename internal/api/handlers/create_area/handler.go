package create_area

import (
	"errors"
	"net/http"

	"github.com/condohub/reservation-service/internal/api/handlers"
	"github.com/condohub/reservation-service/internal/api/middleware"
	"github.com/condohub/reservation-service/internal/service/areas"
)

const (
	msgInvalidBody  = "corpo da requisição inválido"
	msgManagerOnly  = "apenas o síndico pode gerenciar áreas"
	msgInvalidInput = "dados da área inválidos"
	msgMissingActor = "usuário não identificado"
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

// Handle POST /api/v1/areas
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /areas - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req CreateAreaRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /areas - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, areas.ErrAccessDenied):
			h.logger.Warn("POST /areas - Access denied: user_id=%d, role=%s", actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgManagerOnly)

		case errors.Is(err, areas.ErrInvalidInput):
			h.logger.Warn("POST /areas - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /areas - Failed to create area: condo_id=%d, error=%v", actor.CondoID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /areas - Area created: id=%d, condo_id=%d, name=%s", result.ID, result.CondoID, result.Name)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
