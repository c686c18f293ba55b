package resthttp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// HeaderKeyRequestID request id header key
	HeaderKeyRequestID = "X-Request-Id"
)

// Client new json resty client
func Client(timeout time.Duration) *resty.Client {
	return resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Charset", "utf-8").
		SetTimeout(timeout)
}

// Request new resty request bound to ctx
func Request(ctx context.Context, client *resty.Client) *resty.Request {
	return client.R().SetContext(ctx)
}

// WithRequestID resty request with request id
func WithRequestID(ctx context.Context, client *resty.Client, requestID string) *resty.Request {
	return Request(ctx, client).SetHeader(HeaderKeyRequestID, requestID)
}

// Execute do network request, non 2xx responses are errors
func Execute(request *resty.Request, method, url string, body interface{}, resp interface{}) (int, error) {
	if body != nil {
		request = request.SetBody(body)
	}

	r, err := request.Execute(strings.ToUpper(method), url)
	if err != nil {
		return 0, err
	}

	return r.StatusCode(), ParseResponse(r, resp)
}

// ParseResponse parse response
func ParseResponse(r *resty.Response, obj interface{}) error {
	if !r.IsSuccess() {
		return fmt.Errorf("%s %s: %s", r.Request.Method, r.Request.URL, r.Status())
	}

	if obj != nil && len(r.Body()) > 0 {
		return json.Unmarshal(r.Body(), obj)
	}

	return nil
}
