package areas

import (
	"context"
	"time"

	"github.com/condohub/reservation-service/internal/domain"
)

// AreaRepository interface do repositório de áreas
type AreaRepository interface {
	Create(ctx context.Context, area *domain.Area) (*domain.Area, error)
	GetByID(ctx context.Context, id int64) (*domain.Area, error)
	ListByCondo(ctx context.Context, condoID int64) ([]*domain.Area, error)
	Update(ctx context.Context, id int64, upd domain.AreaUpdate) (*domain.Area, error)
	Delete(ctx context.Context, id int64) error
}

// ReservationRepository interface do repositório de reservas
// (usado para medir o estrago da exclusão em cascata e invalidar o cache)
type ReservationRepository interface {
	CountByArea(ctx context.Context, areaID int64) (int64, error)
	DatesTouchedByArea(ctx context.Context, areaID int64) ([]time.Time, error)
}

// SlotCache interface do cache de grades de disponibilidade
type SlotCache interface {
	InvalidateAll(ctx context.Context, condoID, areaID int64) error
	InvalidateArea(ctx context.Context, condoID, areaID int64, dates []time.Time) error
}

// Logger interface de log
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
