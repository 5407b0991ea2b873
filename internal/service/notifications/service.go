package notifications

import (
	"context"
	"fmt"

	"github.com/condohub/reservation-service/internal/domain"
	"github.com/condohub/reservation-service/internal/service/notifications/models"
)

// Textos exibidos nos feeds
const (
	msgTitlePending  = "Reserva Pendente"
	msgTitleNew      = "Nova Reserva"
	msgTitleApproved = "Reserva Aprovada"
	msgTitleRejected = "Reserva Rejeitada"
)

const feedDateFormat = "02/01/2006"

// Service projeta os feeds de notificação a partir do estado das
// reservas. Nada é armazenado além das flags de visto na própria
// reserva, então os feeds são sempre deriváveis e idempotentes.
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService cria o serviço de notificações
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// GetManagerFeed monta o feed do síndico: pendências (urgentes) e
// reservas que ele ainda não viu.
func (s *Service) GetManagerFeed(ctx context.Context, actor models.Actor) (*models.FeedResponse, error) {
	s.logger.Info("GetManagerFeed: condo=%d actor=%d", actor.CondoID, actor.ID)

	if !actor.IsManager() {
		s.logger.Warn("GetManagerFeed: actor=%d is not a manager", actor.ID)
		return nil, ErrAccessDenied
	}

	reservations, err := s.reservationRepo.GetManagerFeed(ctx, actor.CondoID)
	if err != nil {
		s.logger.Error("GetManagerFeed: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetManagerFeed - repository error: %v", ErrInternal, err)
	}

	items := make([]domain.FeedItem, 0, len(reservations))
	for _, res := range reservations {
		items = append(items, projectManagerItem(res))
	}

	s.logger.Info("GetManagerFeed: %d items for condo=%d", len(items), actor.CondoID)
	return models.FromDomainFeedItems(items), nil
}

// GetRequesterFeed monta o feed do morador: decisões sobre as
// reservas dele que ele ainda não viu. Pendências ficam de fora.
func (s *Service) GetRequesterFeed(ctx context.Context, actor models.Actor) (*models.FeedResponse, error) {
	s.logger.Info("GetRequesterFeed: condo=%d requester=%d", actor.CondoID, actor.ID)

	reservations, err := s.reservationRepo.GetRequesterFeed(ctx, actor.CondoID, actor.ID)
	if err != nil {
		s.logger.Error("GetRequesterFeed: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetRequesterFeed - repository error: %v", ErrInternal, err)
	}

	items := make([]domain.FeedItem, 0, len(reservations))
	for _, res := range reservations {
		items = append(items, projectRequesterItem(res))
	}

	s.logger.Info("GetRequesterFeed: %d items for requester=%d", len(items), actor.ID)
	return models.FromDomainFeedItems(items), nil
}

// MarkSeen marca itens do feed como vistos para o papel do ator.
// Idempotente; morador só alcança as próprias reservas (o filtro por
// requester_id no repositório garante).
func (s *Service) MarkSeen(ctx context.Context, req *models.MarkSeenRequest) error {
	s.logger.Info("MarkSeen: actor=%d(%s) marking %d reservations",
		req.Actor.ID, req.Actor.Role, len(req.ReservationIDs))

	if len(req.ReservationIDs) == 0 {
		return fmt.Errorf("%w: reservationIds is required", ErrInvalidInput)
	}

	var err error
	if req.Actor.IsManager() {
		err = s.reservationRepo.MarkSeenByManager(ctx, req.Actor.CondoID, req.ReservationIDs)
	} else {
		err = s.reservationRepo.MarkSeenByRequester(ctx, req.Actor.CondoID, req.Actor.ID, req.ReservationIDs)
	}

	if err != nil {
		s.logger.Error("MarkSeen: repository error: %v", err)
		return fmt.Errorf("%w: MarkSeen - repository error: %v", ErrInternal, err)
	}

	return nil
}

// projectManagerItem projeta uma reserva no item do feed do síndico
func projectManagerItem(res *domain.Reservation) domain.FeedItem {
	title := msgTitleNew
	if res.IsPending() {
		title = msgTitlePending
	}

	return domain.FeedItem{
		ReservationID: res.ID,
		Title:         title,
		Description: fmt.Sprintf("%s - %s (Apto %s)",
			res.AreaName,
			res.ReservationDate.Format(feedDateFormat),
			res.ApartmentLabel,
		),
		Urgent:    res.IsPending(),
		CreatedAt: res.CreatedAt,
	}
}

// projectRequesterItem projeta uma decisão no item do feed do morador
func projectRequesterItem(res *domain.Reservation) domain.FeedItem {
	item := domain.FeedItem{
		ReservationID: res.ID,
		CreatedAt:     res.UpdatedAt,
	}

	switch res.Status {
	case domain.StatusRejected:
		item.Title = msgTitleRejected
		reason := ""
		if res.RejectionReason != nil {
			reason = *res.RejectionReason
		}
		item.Description = fmt.Sprintf("Cancelado: %s", reason)
	default:
		item.Title = msgTitleApproved
		item.Description = fmt.Sprintf("Sua reserva de %s para %s foi atualizada.",
			res.AreaName,
			res.ReservationDate.Format(feedDateFormat),
		)
	}

	return item
}
