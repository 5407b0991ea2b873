package get_slots

import (
	"time"

	"github.com/condohub/reservation-service/internal/domain"
	"github.com/condohub/reservation-service/pkg/types"
)

// buildGrid monta a grade hora a hora da área na data.
//
// Precedência de status: passado > reserva > livre. Uma hora que já
// passou aparece como past mesmo que alguma reserva a cubra — não dá
// mais para reservar nem liberar o que já ficou para trás.
func buildGrid(area *domain.Area, reservations []*domain.Reservation, date, now time.Time) []domain.Slot {
	openHour := area.OpenTime.Hour()
	closeHour := area.CloseTime.Hour()

	slots := make([]domain.Slot, 0, closeHour-openHour)

	for hour := openHour; hour < closeHour; hour++ {
		slot := domain.Slot{
			Hour:      hour,
			StartTime: types.FromHour(hour),
			Status:    domain.SlotFree,
		}

		switch {
		case isHourInPast(date, hour, now):
			slot.Status = domain.SlotPast
		default:
			if holder := holdingReservation(reservations, hour); holder != nil {
				if holder.Status == domain.StatusPending {
					slot.Status = domain.SlotPendingHold
				} else {
					slot.Status = domain.SlotConfirmedHold
				}
			}
		}

		slots = append(slots, slot)
	}

	return slots
}

// holdingReservation devolve a reserva que segura a hora, se houver.
// Rejeitadas não seguram nada.
func holdingReservation(reservations []*domain.Reservation, hour int) *domain.Reservation {
	for _, res := range reservations {
		if res.HoldsSlot() && res.CoversHour(hour) {
			return res
		}
	}
	return nil
}

// isHourInPast verifica se a hora já passou.
// Dias anteriores são inteiramente passados; hoje, a hora corrente
// também conta como passada.
func isHourInPast(date time.Time, hour int, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return true
	}
	if dateOnly.After(nowOnly) {
		return false
	}
	return hour <= now.Hour()
}

// isSameDay verifica se duas datas caem no mesmo dia
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
