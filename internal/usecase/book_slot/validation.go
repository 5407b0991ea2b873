package book_slot

import (
	"fmt"
	"time"

	"github.com/condohub/reservation-service/internal/domain"
)

// validateRequest valida a forma dos dados de entrada
func validateRequest(req *Request) error {
	if req.CondoID <= 0 {
		return fmt.Errorf("%w: condoID must be positive", ErrInvalidInput)
	}

	if req.AreaID <= 0 {
		return fmt.Errorf("%w: areaID must be positive", ErrInvalidInput)
	}

	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartHour < 0 || req.StartHour > 23 {
		return fmt.Errorf("%w: startHour must be between 0 and 23", ErrInvalidInput)
	}

	if req.DurationHours < domain.MinDurationHours {
		return fmt.Errorf("%w: durationHours must be at least %d", ErrInvalidInput, domain.MinDurationHours)
	}

	if req.ActorRole != domain.RoleManager && req.ActorRole != domain.RoleResident {
		return fmt.Errorf("%w: unknown actor role %q", ErrInvalidInput, req.ActorRole)
	}

	return nil
}

// validateDate garante que a data não está no passado
func validateDate(date, now time.Time) error {
	if isDateInPast(date, now) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}
	return nil
}

// validateWindow aplica os limites da área à janela pedida.
// Nenhuma leitura de disponibilidade acontece antes dessas checagens.
func validateWindow(area *domain.Area, startHour, durationHours int) error {
	if durationHours > area.MaxDurationHours {
		return fmt.Errorf("%w: %d hours requested, area allows at most %d",
			ErrDurationTooLong, durationHours, area.MaxDurationHours)
	}

	if !area.ContainsWindow(startHour, durationHours) {
		return fmt.Errorf("%w: %02d:00-%02d:00 is outside %s-%s",
			ErrOutsideOpeningHours, startHour, startHour+durationHours, area.OpenTime, area.CloseTime)
	}

	return nil
}

// validateNotPast rejeita início em hora que já passou hoje.
// A hora corrente conta como passada: reserva começa em hora cheia futura.
func validateNotPast(date time.Time, startHour int, now time.Time) error {
	if !isSameDay(date, now) {
		return nil
	}

	if startHour <= now.Hour() {
		return fmt.Errorf("%w: %02d:00 has already passed today", ErrSlotInPast, startHour)
	}

	return nil
}

// firstTakenHour procura a primeira hora da janela coberta por uma
// reserva que ainda segura horário. Retorna -1 quando a janela está livre.
func firstTakenHour(reservations []*domain.Reservation, startHour, durationHours int) int {
	for hour := startHour; hour < startHour+durationHours; hour++ {
		for _, res := range reservations {
			if res.HoldsSlot() && res.CoversHour(hour) {
				return hour
			}
		}
	}
	return -1
}

// isSameDay verifica se duas datas caem no mesmo dia
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast verifica se a data é anterior ao dia de hoje
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
