package notifier

import (
	"context"

	"custody/core"
)

type multiPublisher []core.NotificationPublisher

// Multi deliver to every publisher in order, stopping at the first failure
func Multi(publishers ...core.NotificationPublisher) core.NotificationPublisher {
	return multiPublisher(publishers)
}

func (m multiPublisher) Publish(ctx context.Context, notification *core.Notification) error {
	for _, p := range m {
		if err := p.Publish(ctx, notification); err != nil {
			return err
		}
	}

	return nil
}
