package notifications

import (
	"context"

	"github.com/condohub/reservation-service/internal/domain"
)

// ReservationRepository interface do repositório de reservas
type ReservationRepository interface {
	GetManagerFeed(ctx context.Context, condoID int64) ([]*domain.Reservation, error)
	GetRequesterFeed(ctx context.Context, condoID, requesterID int64) ([]*domain.Reservation, error)
	MarkSeenByManager(ctx context.Context, condoID int64, ids []int64) error
	MarkSeenByRequester(ctx context.Context, condoID, requesterID int64, ids []int64) error
}

// Logger interface de log
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
