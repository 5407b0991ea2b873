package delete_area

import (
	"context"

	"github.com/condohub/reservation-service/internal/service/areas/models"
)

type AreaService interface {
	Delete(ctx context.Context, id int64, confirm bool, actor models.Actor) (*models.DeleteAreaResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
