package mark_seen

import (
	"context"

	"github.com/condohub/reservation-service/internal/service/notifications/models"
)

type NotificationService interface {
	MarkSeen(ctx context.Context, req *models.MarkSeenRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
