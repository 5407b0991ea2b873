package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/condohub/reservation-service/internal/domain"
	reservationRepo "github.com/condohub/reservation-service/internal/infra/storage/reservation"
	"github.com/condohub/reservation-service/internal/service/reservations/models"
)

// Service serviço de leitura e decisão sobre reservas.
// A criação fica no usecase book_slot, que precisa da transação
// serializável; aqui vivem os fluxos que operam sobre reservas já
// existentes.
type Service struct {
	reservationRepo ReservationRepository
	directory       DirectoryClient
	mailer          Mailer
	cache           SlotCache
	timeProvider    TimeProvider
	logger          Logger
}

// NewService cria o serviço de reservas. mailer e cache podem ser nil
// quando os recursos estão desligados na configuração.
func NewService(
	reservationRepo ReservationRepository,
	directory DirectoryClient,
	mailer Mailer,
	cache SlotCache,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		directory:       directory,
		mailer:          mailer,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID busca uma reserva. Morador só enxerga a própria; síndico
// enxerga qualquer uma do condomínio.
func (s *Service) GetByID(ctx context.Context, id int64, actor models.Actor) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for actor=%d(%s)", id, actor.ID, actor.Role)

	reservation, err := s.getCondoReservation(ctx, id, actor.CondoID)
	if err != nil {
		return nil, err
	}

	if reservation.RequesterID != actor.ID && !actor.IsManager() {
		s.logger.Warn("GetByID: access denied for actor=%d to reservation id=%d", actor.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(reservation), nil
}

// GetCondoReservations lista reservas do condomínio com filtros.
// Operação de síndico.
func (s *Service) GetCondoReservations(ctx context.Context, req *models.GetCondoReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetCondoReservations: condo=%d actor=%d includeHistory=%v",
		req.Actor.CondoID, req.Actor.ID, req.IncludeHistory)

	if !req.Actor.IsManager() {
		s.logger.Warn("GetCondoReservations: actor=%d is not a manager", req.Actor.ID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCondoReservations: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCondoReservations: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetCondoReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCondoReservations: fetched %d reservations for condo=%d", len(reservations), req.Actor.CondoID)
	return models.FromDomainReservationList(reservations), nil
}

// GetUserReservations lista as reservas de um morador.
// O próprio morador ou o síndico podem consultar.
func (s *Service) GetUserReservations(ctx context.Context, userID int64, actor models.Actor) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: user=%d actor=%d(%s)", userID, actor.ID, actor.Role)

	if userID != actor.ID && !actor.IsManager() {
		s.logger.Warn("GetUserReservations: access denied for actor=%d to user=%d", actor.ID, userID)
		return nil, ErrAccessDenied
	}

	reservations, err := s.reservationRepo.GetByRequester(ctx, actor.CondoID, userID)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(reservations), userID)
	return models.FromDomainReservationList(reservations), nil
}

// Approve confirma uma reserva pendente. Operação de síndico.
func (s *Service) Approve(ctx context.Context, id int64, actor models.Actor) (*models.ReservationResponse, error) {
	s.logger.Info("Approve: reservation id=%d by actor=%d", id, actor.ID)

	if !actor.IsManager() {
		s.logger.Warn("Approve: actor=%d is not a manager", actor.ID)
		return nil, ErrAccessDenied
	}

	reservation, err := s.getCondoReservation(ctx, id, actor.CondoID)
	if err != nil {
		return nil, err
	}

	if !reservation.CanBeApproved() {
		s.logger.Warn("Approve: reservation id=%d cannot be approved, status=%s", id, reservation.Status)
		return nil, fmt.Errorf("%w: cannot approve a %s reservation", ErrInvalidTransition, reservation.Status)
	}

	// Guarda de status no update: decisão concorrente perde a corrida
	if err := s.reservationRepo.SetDecision(ctx, id, domain.StatusConfirmed, nil, nil, domain.StatusPending); err != nil {
		if errors.Is(err, reservationRepo.ErrStaleStatus) {
			s.logger.Warn("Approve: reservation id=%d changed status concurrently", id)
			return nil, fmt.Errorf("%w: reservation was decided concurrently", ErrInvalidTransition)
		}
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Approve: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Approve - repository error: %v", ErrInternal, err)
	}

	reservation.Status = domain.StatusConfirmed
	reservation.ViewedByRequester = false

	s.logger.Info("Approve: reservation id=%d confirmed", id)

	s.invalidateGrid(ctx, reservation)
	s.notifyDecision(ctx, reservation)

	return models.FromDomainReservation(reservation), nil
}

// Reject rejeita uma reserva com motivo obrigatório. Operação de
// síndico; libera os horários na grade.
func (s *Service) Reject(ctx context.Context, id int64, req *models.RejectRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Reject: reservation id=%d by actor=%d", id, req.Actor.ID)

	if !req.Actor.IsManager() {
		s.logger.Warn("Reject: actor=%d is not a manager", req.Actor.ID)
		return nil, ErrAccessDenied
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		s.logger.Warn("Reject: blank reason for reservation id=%d", id)
		return nil, ErrBlankReason
	}
	if len(reason) > domain.MaxRejectionReasonLength {
		s.logger.Warn("Reject: reason too long (%d chars) for reservation id=%d", len(reason), id)
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxRejectionReasonLength)
	}

	reservation, err := s.getCondoReservation(ctx, id, req.Actor.CondoID)
	if err != nil {
		return nil, err
	}

	if !reservation.CanBeRejected() {
		s.logger.Warn("Reject: reservation id=%d cannot be rejected, status=%s", id, reservation.Status)
		return nil, fmt.Errorf("%w: cannot reject a %s reservation", ErrInvalidTransition, reservation.Status)
	}

	now := s.timeProvider.Now()
	if err := s.reservationRepo.SetDecision(ctx, id, domain.StatusRejected, &reason, &now,
		domain.StatusPending, domain.StatusConfirmed); err != nil {
		if errors.Is(err, reservationRepo.ErrStaleStatus) {
			s.logger.Warn("Reject: reservation id=%d changed status concurrently", id)
			return nil, fmt.Errorf("%w: reservation was decided concurrently", ErrInvalidTransition)
		}
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Reject: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
	}

	reservation.Status = domain.StatusRejected
	reservation.RejectionReason = &reason
	reservation.RejectedAt = &now
	reservation.ViewedByRequester = false

	s.logger.Info("Reject: reservation id=%d rejected", id)

	s.invalidateGrid(ctx, reservation)
	s.notifyDecision(ctx, reservation)

	return models.FromDomainReservation(reservation), nil
}

// Cancel cancela uma reserva.
// O dono remove a própria reserva da base; o síndico cancelando
// reserva alheia rejeita com motivo obrigatório, preservando o
// histórico da decisão.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelRequest) error {
	s.logger.Info("Cancel: reservation id=%d by actor=%d(%s)", id, req.Actor.ID, req.Actor.Role)

	reservation, err := s.getCondoReservation(ctx, id, req.Actor.CondoID)
	if err != nil {
		return err
	}

	if reservation.IsRejected() {
		s.logger.Warn("Cancel: reservation id=%d already rejected", id)
		return fmt.Errorf("%w: cannot cancel a rejected reservation", ErrInvalidTransition)
	}

	// Dono cancelando: a reserva some
	if reservation.RequesterID == req.Actor.ID {
		if err := s.reservationRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Cancel: reservation id=%d removed by owner", id)
		s.invalidateGrid(ctx, reservation)
		return nil
	}

	// Terceiro cancelando: só síndico, e vira rejeição com motivo
	if !req.Actor.IsManager() {
		s.logger.Warn("Cancel: access denied for actor=%d to reservation id=%d", req.Actor.ID, id)
		return ErrAccessDenied
	}

	if _, err := s.Reject(ctx, id, &models.RejectRequest{Actor: req.Actor, Reason: req.Reason}); err != nil {
		return err
	}

	return nil
}

// Helpers

// getCondoReservation busca a reserva garantindo o escopo do condomínio
func (s *Service) getCondoReservation(ctx context.Context, id, condoID int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if reservation.CondoID != condoID {
		s.logger.Warn("reservation id=%d belongs to condo %d, not %d", id, reservation.CondoID, condoID)
		return nil, ErrReservationNotFound
	}

	return reservation, nil
}

// invalidateGrid derruba a grade cacheada da área na data da reserva
func (s *Service) invalidateGrid(ctx context.Context, reservation *domain.Reservation) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, reservation.CondoID, reservation.AreaID, reservation.ReservationDate); err != nil {
		s.logger.Warn("failed to invalidate slot cache for area=%d: %v", reservation.AreaID, err)
	}
}

// notifyDecision envia o email de decisão ao morador.
// Melhor esforço: falha de email não desfaz a decisão.
func (s *Service) notifyDecision(ctx context.Context, reservation *domain.Reservation) {
	if s.mailer == nil {
		return
	}

	resident, err := s.directory.GetResidentWithGracefulDegradation(ctx, reservation.RequesterID)
	if err != nil {
		s.logger.Warn("notifyDecision: could not resolve requester id=%d: %v", reservation.RequesterID, err)
		return
	}

	if err := s.mailer.SendDecision(resident.Name, resident.Email, reservation); err != nil {
		s.logger.Warn("notifyDecision: failed to send decision mail for reservation id=%d: %v", reservation.ID, err)
	}
}
