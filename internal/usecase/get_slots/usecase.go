package get_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/condohub/reservation-service/internal/domain"
	cacheClient "github.com/condohub/reservation-service/internal/infra/cache/slots"
	areaRepo "github.com/condohub/reservation-service/internal/infra/storage/area"
)

// UseCase use case de consulta da grade de disponibilidade
type UseCase struct {
	reservationRepo ReservationRepository
	areaRepo        AreaRepository
	cache           SlotCache
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase cria o use case de consulta de grade
func NewUseCase(
	reservationRepo ReservationRepository,
	areaRepo AreaRepository,
	cache SlotCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		areaRepo:        areaRepo,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute monta a grade de horas da área na data.
// É uma leitura pura: mesmos insumos, mesma grade.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlots: validation failed: %v", err)
		return nil, err
	}

	area, err := uc.areaRepo.GetByID(ctx, req.AreaID)
	if err != nil {
		if errors.Is(err, areaRepo.ErrAreaNotFound) {
			uc.logger.Warn("GetSlots: area id=%d not found", req.AreaID)
			return nil, ErrAreaNotFound
		}
		uc.logger.Error("GetSlots: failed to get area id=%d: %v", req.AreaID, err)
		return nil, fmt.Errorf("%w: failed to get area: %v", ErrInternal, err)
	}

	if area.CondoID != req.CondoID {
		uc.logger.Warn("GetSlots: area id=%d belongs to condo %d, not %d", req.AreaID, area.CondoID, req.CondoID)
		return nil, ErrAreaNotFound
	}

	now := uc.timeProvider.Now()

	// A grade de hoje depende da hora corrente, então só datas futuras
	// (ou passadas) passam pelo cache.
	cacheable := uc.cache != nil && !isSameDay(req.Date, now)

	if cacheable {
		if cached, err := uc.cache.Get(ctx, req.CondoID, req.AreaID, req.Date); err == nil {
			uc.logger.Info("GetSlots: cache hit for area=%d date=%s", req.AreaID, req.Date.Format(domain.DateFormat))
			return &Response{
				AreaID:   area.ID,
				AreaName: area.Name,
				Date:     req.Date,
				Slots:    cached,
			}, nil
		} else if !errors.Is(err, cacheClient.ErrCacheMiss) {
			uc.logger.Warn("GetSlots: cache read failed, falling back to storage: %v", err)
		}
	}

	filter := domain.ReservationFilter{
		CondoID:   req.CondoID,
		AreaID:    &req.AreaID,
		StartDate: &req.Date,
		EndDate:   &req.Date,
	}

	reservations, err := uc.reservationRepo.GetByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	slots := buildGrid(area, reservations, req.Date, now)

	if cacheable {
		if err := uc.cache.Set(ctx, req.CondoID, req.AreaID, req.Date, slots); err != nil {
			uc.logger.Warn("GetSlots: failed to cache grid: %v", err)
		}
	}

	return &Response{
		AreaID:   area.ID,
		AreaName: area.Name,
		Date:     req.Date,
		Slots:    slots,
	}, nil
}

// validateRequest valida a forma dos dados de entrada
func validateRequest(req *Request) error {
	if req.CondoID <= 0 {
		return fmt.Errorf("%w: condoID must be positive", ErrInvalidInput)
	}

	if req.AreaID <= 0 {
		return fmt.Errorf("%w: areaID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
