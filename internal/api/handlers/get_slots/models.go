package get_slots

import (
	"github.com/condohub/reservation-service/internal/domain"
	getSlots "github.com/condohub/reservation-service/internal/usecase/get_slots"
)

// SlotResponse uma hora da grade
type SlotResponse struct {
	Hour      int    `json:"hour"`
	StartTime string `json:"startTime"` // "10:00"
	Status    string `json:"status"`    // free | pending_hold | confirmed_hold | past
}

// GetSlotsResponse grade da área na data
type GetSlotsResponse struct {
	AreaID   int64          `json:"areaId"`
	AreaName string         `json:"areaName"`
	Date     string         `json:"date"`
	Slots    []SlotResponse `json:"slots"`
}

// FromUseCaseResponse converte a resposta do usecase em HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *GetSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			Hour:      slot.Hour,
			StartTime: slot.StartTime.String(),
			Status:    string(slot.Status),
		})
	}

	return &GetSlotsResponse{
		AreaID:   resp.AreaID,
		AreaName: resp.AreaName,
		Date:     resp.Date.Format(domain.DateFormat),
		Slots:    slots,
	}
}
