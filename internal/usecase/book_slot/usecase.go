package book_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/condohub/reservation-service/internal/domain"
	areaRepo "github.com/condohub/reservation-service/internal/infra/storage/area"
	directoryClient "github.com/condohub/reservation-service/internal/integrations/directory"
	"github.com/condohub/reservation-service/pkg/txmanager"
	"github.com/condohub/reservation-service/pkg/types"
)

// UseCase use case de criação de reserva
type UseCase struct {
	reservationRepo ReservationRepository
	areaRepo        AreaRepository
	directory       DirectoryClient
	cache           SlotCache
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase cria o use case de reserva
func NewUseCase(
	reservationRepo ReservationRepository,
	areaRepo AreaRepository,
	directory DirectoryClient,
	cache SlotCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		areaRepo:        areaRepo,
		directory:       directory,
		cache:           cache,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute executa a criação de reserva.
// Toda checagem barata (formato, limites da área, hora passada) roda
// antes de qualquer leitura de disponibilidade; a leitura e o insert
// rodam juntos numa transação serializável.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSlot: condo=%d, area=%d, requester=%d, actor=%d(%s), date=%s, start=%02d:00, duration=%dh",
		req.CondoID, req.AreaID, req.RequesterID, req.ActorID, req.ActorRole,
		req.Date.Format(domain.DateFormat), req.StartHour, req.DurationHours)

	// 1. Validação da forma dos dados
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Horário atual
	now := uc.timeProvider.Now()

	// 3. Busca a área
	area, err := uc.areaRepo.GetByID(ctx, req.AreaID)
	if err != nil {
		if errors.Is(err, areaRepo.ErrAreaNotFound) {
			uc.logger.Warn("BookSlot: area id=%d not found", req.AreaID)
			return nil, ErrAreaNotFound
		}
		uc.logger.Error("BookSlot: failed to get area id=%d: %v", req.AreaID, err)
		return nil, fmt.Errorf("%w: failed to get area: %v", ErrInternal, err)
	}

	if area.CondoID != req.CondoID {
		uc.logger.Warn("BookSlot: area id=%d belongs to condo %d, not %d", req.AreaID, area.CondoID, req.CondoID)
		return nil, ErrAreaNotFound
	}

	// 4. Data não pode estar no passado
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("BookSlot: date validation failed: %v", err)
		return nil, err
	}

	// 5. Limites da área (duração, expediente) — sem tocar o banco de reservas
	if err := validateWindow(area, req.StartHour, req.DurationHours); err != nil {
		uc.logger.Warn("BookSlot: window validation failed: %v", err)
		return nil, err
	}

	// 6. Hora de início não pode ter passado hoje
	if err := validateNotPast(req.Date, req.StartHour, now); err != nil {
		uc.logger.Warn("BookSlot: past-hour validation failed: %v", err)
		return nil, err
	}

	// 7. Dados do solicitante para denormalização
	resident, err := uc.directory.GetResident(ctx, req.RequesterID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrResidentNotFound) {
			uc.logger.Warn("BookSlot: requester id=%d not found in directory", req.RequesterID)
			return nil, ErrResidentNotFound
		}
		uc.logger.Error("BookSlot: failed to get requester id=%d: %v", req.RequesterID, err)
		return nil, fmt.Errorf("%w: failed to get requester: %v", ErrInternal, err)
	}

	apartment := resident.Apartment
	if apartment == "" {
		apartment = domain.ApartmentFallbackLabel
	}

	// Status inicial: síndico criando ou área sem aprovação entram confirmadas
	isManagerActor := req.ActorRole == domain.RoleManager
	status := domain.StatusPending
	if isManagerActor || !area.RequiresApproval {
		status = domain.StatusConfirmed
	}

	var result *domain.Reservation

	// 8. Leitura de disponibilidade + insert na mesma transação serializável
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Reservas da área na data, com FOR UPDATE
		filter := domain.ReservationFilter{
			CondoID:   req.CondoID,
			AreaID:    &req.AreaID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		}

		reservations, err := uc.reservationRepo.GetByFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("BookSlot: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 8.2. Varredura hora a hora da janela pedida
		if taken := firstTakenHour(reservations, req.StartHour, req.DurationHours); taken >= 0 {
			uc.logger.Warn("BookSlot: hour %02d:00 already taken on %s",
				taken, req.Date.Format(domain.DateFormat))
			return fmt.Errorf("%w: %02d:00 is already reserved", ErrSlotTaken, taken)
		}

		// 8.3. Insert com os dados denormalizados
		reservation := &domain.Reservation{
			CondoID:           req.CondoID,
			AreaID:            area.ID,
			AreaName:          area.Name,
			ReservationDate:   req.Date,
			StartTime:         types.FromHour(req.StartHour),
			EndTime:           types.FromHour(req.StartHour + req.DurationHours),
			RequesterID:       req.RequesterID,
			RequesterName:     resident.Name,
			ApartmentLabel:    apartment,
			Status:            status,
			ViewedByManager:   isManagerActor,
			ViewedByRequester: req.RequesterID == req.ActorID,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("BookSlot: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Perder a corrida de commit equivale a encontrar o horário ocupado
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("BookSlot: serialization conflict on area=%d date=%s",
				req.AreaID, req.Date.Format(domain.DateFormat))
			return nil, fmt.Errorf("%w: concurrent reservation won the slot", ErrSlotTaken)
		}
		return nil, err
	}

	uc.logger.Info("BookSlot: successfully created reservation id=%d status=%s", result.ID, result.Status)

	// Derruba a grade cacheada da área na data
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, req.CondoID, req.AreaID, req.Date); err != nil {
			uc.logger.Warn("BookSlot: failed to invalidate slot cache: %v", err)
		}
	}

	return &Response{
		ID:                result.ID,
		CondoID:           result.CondoID,
		AreaID:            result.AreaID,
		AreaName:          result.AreaName,
		Date:              result.ReservationDate,
		StartTime:         result.StartTime,
		EndTime:           result.EndTime,
		RequesterID:       result.RequesterID,
		RequesterName:     result.RequesterName,
		ApartmentLabel:    result.ApartmentLabel,
		Status:            string(result.Status),
		ViewedByManager:   result.ViewedByManager,
		ViewedByRequester: result.ViewedByRequester,
		CreatedAt:         result.CreatedAt,
		UpdatedAt:         result.UpdatedAt,
	}, nil
}
