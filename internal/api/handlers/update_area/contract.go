package update_area

import (
	"context"

	"github.com/condohub/reservation-service/internal/service/areas/models"
)

type AreaService interface {
	Update(ctx context.Context, id int64, req *models.UpdateAreaRequest) (*models.AreaResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
