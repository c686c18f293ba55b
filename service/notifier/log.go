package notifier

import (
	"context"

	"custody/core"

	"github.com/fox-one/pkg/logger"
)

type logPublisher struct{}

// Log write notifications to the context logger
func Log() core.NotificationPublisher {
	return logPublisher{}
}

func (logPublisher) Publish(ctx context.Context, notification *core.Notification) error {
	logger.FromContext(ctx).
		WithField("id", notification.ID).
		WithField("kind", notification.Kind).
		WithField("correlation_id", notification.CorrelationID).
		WithField("asset", notification.AssetID).
		WithField("principal", notification.Principal).
		WithField("counterparty", notification.Counterparty).
		Infoln("notification", notification.Amount)

	return nil
}
