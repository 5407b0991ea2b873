package areas

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/condohub/reservation-service/internal/domain"
	areaRepo "github.com/condohub/reservation-service/internal/infra/storage/area"
	"github.com/condohub/reservation-service/internal/service/areas/models"
	"github.com/condohub/reservation-service/pkg/types"
)

// Service cadastro das áreas comuns do condomínio
type Service struct {
	areaRepo        AreaRepository
	reservationRepo ReservationRepository
	cache           SlotCache
	logger          Logger
}

// NewService cria o serviço de áreas. cache pode ser nil quando o
// Redis está desligado na configuração.
func NewService(
	areaRepo AreaRepository,
	reservationRepo ReservationRepository,
	cache SlotCache,
	logger Logger,
) *Service {
	return &Service{
		areaRepo:        areaRepo,
		reservationRepo: reservationRepo,
		cache:           cache,
		logger:          logger,
	}
}

// Create cadastra uma área. Operação de síndico.
func (s *Service) Create(ctx context.Context, req *models.CreateAreaRequest) (*models.AreaResponse, error) {
	s.logger.Info("Create: area %q for condo=%d by actor=%d", req.Name, req.Actor.CondoID, req.Actor.ID)

	if !req.Actor.IsManager() {
		s.logger.Warn("Create: actor=%d is not a manager", req.Actor.ID)
		return nil, ErrAccessDenied
	}

	name := strings.TrimSpace(req.Name)
	openTime, closeTime, err := validateHours(req.OpenTime, req.CloseTime)
	if err != nil {
		s.logger.Warn("Create: hours validation failed: %v", err)
		return nil, err
	}

	if err := validateArea(name, openTime, closeTime, req.MaxDurationHours); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	area := &domain.Area{
		CondoID:          req.Actor.CondoID,
		Name:             name,
		OpenTime:         openTime,
		CloseTime:        closeTime,
		RequiresApproval: req.RequiresApproval,
		MaxDurationHours: req.MaxDurationHours,
	}

	created, err := s.areaRepo.Create(ctx, area)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: area id=%d created", created.ID)
	return models.FromDomainArea(created), nil
}

// GetByID busca uma área do condomínio
func (s *Service) GetByID(ctx context.Context, id, condoID int64) (*models.AreaResponse, error) {
	area, err := s.getCondoArea(ctx, id, condoID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainArea(area), nil
}

// List lista as áreas do condomínio
func (s *Service) List(ctx context.Context, condoID int64) (*models.AreaListResponse, error) {
	areas, err := s.areaRepo.ListByCondo(ctx, condoID)
	if err != nil {
		s.logger.Error("List: repository error for condo=%d: %v", condoID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainAreaList(areas), nil
}

// Update aplica uma atualização parcial na área. Operação de síndico.
// O resultado combinado precisa continuar respeitando os invariantes,
// então a validação roda sobre os valores mesclados.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateAreaRequest) (*models.AreaResponse, error) {
	s.logger.Info("Update: area id=%d by actor=%d", id, req.Actor.ID)

	if !req.Actor.IsManager() {
		s.logger.Warn("Update: actor=%d is not a manager", req.Actor.ID)
		return nil, ErrAccessDenied
	}

	current, err := s.getCondoArea(ctx, id, req.Actor.CondoID)
	if err != nil {
		return nil, err
	}

	// Mescla o estado atual com os campos enviados
	name := current.Name
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}

	openStr := current.OpenTime.String()
	if req.OpenTime != nil {
		openStr = *req.OpenTime
	}
	closeStr := current.CloseTime.String()
	if req.CloseTime != nil {
		closeStr = *req.CloseTime
	}

	openTime, closeTime, err := validateHours(openStr, closeStr)
	if err != nil {
		s.logger.Warn("Update: hours validation failed for area id=%d: %v", id, err)
		return nil, err
	}

	maxDuration := current.MaxDurationHours
	if req.MaxDurationHours != nil {
		maxDuration = *req.MaxDurationHours
	}

	if err := validateArea(name, openTime, closeTime, maxDuration); err != nil {
		s.logger.Warn("Update: validation failed for area id=%d: %v", id, err)
		return nil, err
	}

	upd := req.ToDomainUpdate()
	if req.Name != nil {
		upd.Name = &name
	}

	if upd.IsEmpty() {
		return models.FromDomainArea(current), nil
	}

	updated, err := s.areaRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, areaRepo.ErrAreaNotFound) {
			return nil, ErrAreaNotFound
		}
		s.logger.Error("Update: repository error for area id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: area id=%d updated", id)

	// Regras novas invalidam qualquer grade cacheada da área
	s.invalidateGrids(ctx, updated.CondoID, updated.ID)

	return models.FromDomainArea(updated), nil
}

// Delete exclui a área e, em cascata, todas as suas reservas.
// Exige confirm=true e devolve quantas reservas foram destruídas.
func (s *Service) Delete(ctx context.Context, id int64, confirm bool, actor models.Actor) (*models.DeleteAreaResponse, error) {
	s.logger.Info("Delete: area id=%d by actor=%d confirm=%v", id, actor.ID, confirm)

	if !actor.IsManager() {
		s.logger.Warn("Delete: actor=%d is not a manager", actor.ID)
		return nil, ErrAccessDenied
	}

	area, err := s.getCondoArea(ctx, id, actor.CondoID)
	if err != nil {
		return nil, err
	}

	if !confirm {
		s.logger.Warn("Delete: area id=%d deletion refused without confirmation", id)
		return nil, ErrConfirmationRequired
	}

	count, err := s.reservationRepo.CountByArea(ctx, id)
	if err != nil {
		s.logger.Error("Delete: failed to count reservations for area id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Delete - count reservations: %v", ErrInternal, err)
	}

	// As datas precisam ser lidas antes da cascata levar as reservas
	s.invalidateReservedDates(ctx, area.CondoID, area.ID)

	if err := s.areaRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, areaRepo.ErrAreaNotFound) {
			return nil, ErrAreaNotFound
		}
		s.logger.Error("Delete: repository error for area id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: area id=%d removed, %d reservations cascaded", id, count)
	return &models.DeleteAreaResponse{RemovedReservations: count}, nil
}

// Helpers

// getCondoArea busca a área garantindo o escopo do condomínio
func (s *Service) getCondoArea(ctx context.Context, id, condoID int64) (*domain.Area, error) {
	area, err := s.areaRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, areaRepo.ErrAreaNotFound) {
			s.logger.Warn("area id=%d not found", id)
			return nil, ErrAreaNotFound
		}
		s.logger.Error("repository error for area id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if area.CondoID != condoID {
		s.logger.Warn("area id=%d belongs to condo %d, not %d", id, area.CondoID, condoID)
		return nil, ErrAreaNotFound
	}

	return area, nil
}

func (s *Service) invalidateGrids(ctx context.Context, condoID, areaID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAll(ctx, condoID, areaID); err != nil {
		s.logger.Warn("failed to invalidate cached grids for area=%d: %v", areaID, err)
	}
}

// invalidateReservedDates derruba as grades cacheadas das datas com
// reserva na área. Grades de datas vazias ficam inalcançáveis depois
// da exclusão (a busca da área devolve 404 antes do cache) e expiram
// pelo TTL, então não precisam do KEYS do Redis.
func (s *Service) invalidateReservedDates(ctx context.Context, condoID, areaID int64) {
	if s.cache == nil {
		return
	}

	dates, err := s.reservationRepo.DatesTouchedByArea(ctx, areaID)
	if err != nil {
		s.logger.Warn("failed to list reserved dates for area=%d: %v", areaID, err)
		return
	}

	if err := s.cache.InvalidateArea(ctx, condoID, areaID, dates); err != nil {
		s.logger.Warn("failed to invalidate cached grids for area=%d: %v", areaID, err)
	}
}

// validateHours valida o formato e devolve os horários tipados
func validateHours(open, close string) (types.TimeString, types.TimeString, error) {
	openTime, err := types.NewTimeStringFromString(open)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid openTime: %v", ErrInvalidInput, err)
	}

	closeTime, err := types.NewTimeStringFromString(close)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid closeTime: %v", ErrInvalidInput, err)
	}

	return openTime, closeTime, nil
}

// validateArea aplica os invariantes da área sobre o estado final
func validateArea(name string, openTime, closeTime types.TimeString, maxDurationHours int) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxAreaNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxAreaNameLength)
	}

	// Grade é por hora cheia: expediente quebrado não tem representação
	if !openTime.IsWholeHour() {
		return fmt.Errorf("%w: openTime must be a whole hour", ErrInvalidInput)
	}
	if !closeTime.IsWholeHour() {
		return fmt.Errorf("%w: closeTime must be a whole hour", ErrInvalidInput)
	}

	if !openTime.IsBefore(closeTime) {
		return fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidInput)
	}

	openHours := closeTime.Hour() - openTime.Hour()
	if maxDurationHours < domain.MinDurationHours {
		return fmt.Errorf("%w: maxDurationHours must be at least %d", ErrInvalidInput, domain.MinDurationHours)
	}
	if maxDurationHours > openHours {
		return fmt.Errorf("%w: maxDurationHours cannot exceed the %d open hours", ErrInvalidInput, openHours)
	}

	return nil
}
