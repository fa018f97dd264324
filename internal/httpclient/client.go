package httpclient

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/itunescache/itunescache/internal/constants"
)

// New returns an http.Client for upstream calls. Requests are traced,
// tagged with a User-Agent and bounded by timeout. It never retries.
func New(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = constants.UpstreamTimeout
	}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &userAgentTransport{
			next:      otelhttp.NewTransport(transport),
			userAgent: constants.DefaultUserAgent,
		},
	}
}

type userAgentTransport struct {
	next      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.next.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.next.RoundTrip(clone)
}
