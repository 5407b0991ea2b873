package book_slot

import (
	"context"
	"time"

	"github.com/condohub/reservation-service/internal/domain"
	"github.com/condohub/reservation-service/internal/integrations/directory"
)

// ReservationRepository interface do repositório de reservas
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// AreaRepository interface do repositório de áreas
type AreaRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Area, error)
}

// DirectoryClient interface do cliente do cadastro de moradores
type DirectoryClient interface {
	GetResident(ctx context.Context, residentID int64) (*directory.Resident, error)
}

// SlotCache interface do cache de grades de disponibilidade
type SlotCache interface {
	Invalidate(ctx context.Context, condoID, areaID int64, date time.Time) error
}

// TransactionManager interface de controle de transações
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
