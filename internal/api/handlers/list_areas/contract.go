package list_areas

import (
	"context"

	"github.com/condohub/reservation-service/internal/service/areas/models"
)

type AreaService interface {
	List(ctx context.Context, condoID int64) (*models.AreaListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
