package reservations

import (
	"context"
	"time"

	"github.com/condohub/reservation-service/internal/domain"
	"github.com/condohub/reservation-service/internal/integrations/directory"
)

// ReservationRepository interface do repositório de reservas
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	GetByRequester(ctx context.Context, condoID, requesterID int64) ([]*domain.Reservation, error)
	SetDecision(ctx context.Context, id int64, status domain.ReservationStatus, reason *string, rejectedAt *time.Time, from ...domain.ReservationStatus) error
	Delete(ctx context.Context, id int64) error
}

// DirectoryClient interface do cliente do cadastro de moradores
type DirectoryClient interface {
	GetResidentWithGracefulDegradation(ctx context.Context, residentID int64) (*directory.Resident, error)
}

// Mailer interface de envio do aviso de decisão
type Mailer interface {
	SendDecision(toName, toEmail string, res *domain.Reservation) error
}

// SlotCache interface do cache de grades de disponibilidade
type SlotCache interface {
	Invalidate(ctx context.Context, condoID, areaID int64, date time.Time) error
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
