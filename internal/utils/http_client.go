package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient embeds *resty.Client so callers use its request builder
// directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client rooted at baseURL. A zero timeout leaves the
// resty default (none) in place; per-call deadlines still come from the
// request context.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().SetBaseURL(baseURL)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPClient{Client: client}
}
