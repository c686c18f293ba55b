package notifier

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"custody/core"
	"custody/pkg/resthttp"

	"github.com/go-resty/resty/v2"
)

// HeaderKeyNotificationID listeners dedupe deliveries by this header
const HeaderKeyNotificationID = "X-Notification-Id"

type webhookPublisher struct {
	client *resty.Client
	url    string
}

// Webhook post notifications as json to url
func Webhook(url string, timeout time.Duration) core.NotificationPublisher {
	return &webhookPublisher{
		client: resthttp.Client(timeout),
		url:    url,
	}
}

func (p *webhookPublisher) Publish(ctx context.Context, notification *core.Notification) error {
	request := resthttp.Request(ctx, p.client).
		SetHeader(HeaderKeyNotificationID, strconv.FormatInt(notification.ID, 10))

	_, err := resthttp.Execute(request, http.MethodPost, p.url, notification, nil)
	return err
}
