package book_slot

import (
	"time"

	"github.com/condohub/reservation-service/pkg/types"
)

// Request dados de entrada da criação de reserva
type Request struct {
	CondoID       int64
	AreaID        int64
	RequesterID   int64     // morador dono da reserva
	ActorID       int64     // quem está criando (pode ser o síndico)
	ActorRole     string    // manager | resident
	Date          time.Time // dia da reserva
	StartHour     int       // hora cheia de início
	DurationHours int       // duração em horas cheias
}

// Response dados da reserva criada
type Response struct {
	ID                int64
	CondoID           int64
	AreaID            int64
	AreaName          string
	Date              time.Time
	StartTime         types.TimeString
	EndTime           types.TimeString
	RequesterID       int64
	RequesterName     string
	ApartmentLabel    string
	Status            string
	ViewedByManager   bool
	ViewedByRequester bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
