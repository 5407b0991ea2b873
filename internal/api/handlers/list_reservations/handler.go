package list_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/condohub/reservation-service/internal/api/handlers"
	"github.com/condohub/reservation-service/internal/api/middleware"
	"github.com/condohub/reservation-service/internal/domain"
	"github.com/condohub/reservation-service/internal/service/reservations"
	"github.com/condohub/reservation-service/internal/service/reservations/models"
)

const (
	msgInvalidFilter = "filtros de busca inválidos"
	msgManagerOnly   = "apenas o síndico pode listar as reservas do condomínio"
	msgMissingActor  = "usuário não identificado"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations?areaId=&from=&to=&status=&includeHistory=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	req, err := parseQuery(r, actor)
	if err != nil {
		h.logger.Warn("GET /reservations - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetCondoReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /reservations - Access denied: user_id=%d, role=%s", actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgManagerOnly)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /reservations - Failed to list reservations: condo_id=%d, error=%v", actor.CondoID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations - Listed %d reservations for condo_id=%d", len(result.Reservations), actor.CondoID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseQuery(r *http.Request, actor middleware.Actor) (*models.GetCondoReservationsRequest, error) {
	query := r.URL.Query()

	req := &models.GetCondoReservationsRequest{
		Actor: models.Actor{
			ID:      actor.UserID,
			Role:    actor.Role,
			CondoID: actor.CondoID,
		},
		IncludeHistory: query.Get("includeHistory") == "true",
	}

	if raw := query.Get("areaId"); raw != "" {
		areaID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.AreaID = &areaID
	}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &to
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	return req, nil
}
