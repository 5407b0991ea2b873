package get_slots

import (
	"context"
	"time"

	"github.com/condohub/reservation-service/internal/domain"
)

// ReservationRepository interface do repositório de reservas
type ReservationRepository interface {
	GetByFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// AreaRepository interface do repositório de áreas
type AreaRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Area, error)
}

// SlotCache interface do cache de grades de disponibilidade
type SlotCache interface {
	Get(ctx context.Context, condoID, areaID int64, date time.Time) ([]domain.Slot, error)
	Set(ctx context.Context, condoID, areaID int64, date time.Time, slots []domain.Slot) error
}

// TimeProvider interface de relógio (injetável nos testes)
type TimeProvider interface {
	Now() time.Time
}

// Logger interface de log
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider relógio de produção
type RealTimeProvider struct{}

// Now retorna o horário atual
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
