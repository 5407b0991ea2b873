// Package digest holds the scheduled job that mails the manager a
// summary of reservations stuck in pending. It runs outside the core
// flows and only reads what any caller could read.
package digest

import (
	"context"
	"time"

	"github.com/condohub/reservation-service/internal/domain"
)

const runTimeout = 30 * time.Second

// ReservationRepository interface do repositório de reservas
type ReservationRepository interface {
	GetPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*domain.Reservation, error)
}

// Mailer interface de envio do resumo
type Mailer interface {
	SendPendingDigest(pending []*domain.Reservation) error
}

// Logger interface de log
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Job envia o resumo de pendências antigas. Implementa cron.Job.
type Job struct {
	reservationRepo ReservationRepository
	mailer          Mailer
	maxAge          time.Duration
	logger          Logger
}

// New cria o job de resumo de pendências
func New(reservationRepo ReservationRepository, mailer Mailer, maxAge time.Duration, logger Logger) *Job {
	return &Job{
		reservationRepo: reservationRepo,
		mailer:          mailer,
		maxAge:          maxAge,
		logger:          logger,
	}
}

// Run executa uma rodada do resumo
func (j *Job) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cutoff := time.Now().Add(-j.maxAge)
	j.logger.Info("Digest: collecting reservations pending since before %s", cutoff.Format(time.RFC3339))

	pending, err := j.reservationRepo.GetPendingOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error("Digest: failed to collect pending reservations: %v", err)
		return
	}

	if len(pending) == 0 {
		j.logger.Info("Digest: nothing pending, skipping mail")
		return
	}

	if err := j.mailer.SendPendingDigest(pending); err != nil {
		j.logger.Error("Digest: failed to send digest mail: %v", err)
		return
	}

	j.logger.Info("Digest: sent summary of %d pending reservations", len(pending))
}
