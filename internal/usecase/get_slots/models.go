package get_slots

import (
	"time"

	"github.com/condohub/reservation-service/internal/domain"
)

// Request dados de entrada da consulta de grade
type Request struct {
	CondoID int64
	AreaID  int64
	Date    time.Time
}

// Response grade de disponibilidade da área na data
type Response struct {
	AreaID   int64
	AreaName string
	Date     time.Time
	Slots    []domain.Slot
}
