package list_reservations

import (
	"context"

	"github.com/condohub/reservation-service/internal/service/reservations/models"
)

type ReservationService interface {
	GetCondoReservations(ctx context.Context, req *models.GetCondoReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
