package notifier

import (
	"context"
	"encoding/json"

	"custody/core"

	"github.com/go-redis/redis"
)

// StreamMaxLen approximate cap of the notification stream
const StreamMaxLen = 100000

type redisPublisher struct {
	client *redis.Client
	stream string
}

// Redis append notifications to a redis stream
func Redis(client *redis.Client, stream string) core.NotificationPublisher {
	return &redisPublisher{
		client: client,
		stream: stream,
	}
}

func (p *redisPublisher) Publish(ctx context.Context, notification *core.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	return p.client.WithContext(ctx).XAdd(&redis.XAddArgs{
		Stream:       p.stream,
		MaxLenApprox: StreamMaxLen,
		Values: map[string]interface{}{
			"id":             notification.ID,
			"kind":           string(notification.Kind),
			"correlation_id": notification.CorrelationID,
			"asset_id":       notification.AssetID,
			"payload":        string(payload),
		},
	}).Err()
}
