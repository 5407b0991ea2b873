package get_requester_feed

import (
	"context"

	"github.com/condohub/reservation-service/internal/service/notifications/models"
)

type NotificationService interface {
	GetRequesterFeed(ctx context.Context, actor models.Actor) (*models.FeedResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
