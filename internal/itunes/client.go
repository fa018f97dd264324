package itunes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/itunescache/itunescache/internal/constants"
	"github.com/itunescache/itunescache/internal/domain"
	"github.com/itunescache/itunescache/internal/metrics"
)

const searchOp = "itunes search"

// Params are the query parameters of one upstream search.
type Params struct {
	Term    string
	Media   domain.MediaType
	Country string
	Limit   int
}

// Fetcher is anything that can run an upstream search.
type Fetcher interface {
	Search(ctx context.Context, p Params) (*SearchResponse, error)
}

type Client struct {
	BaseURL string
	Client  *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.UpstreamTimeout}
	}
	return &Client{
		BaseURL: baseURL,
		Client:  httpClient,
	}
}

// Search issues a single GET against the search endpoint. Every failure,
// including non-2xx statuses and bad bodies, is a *domain.NetworkError.
func (c *Client) Search(ctx context.Context, p Params) (*SearchResponse, error) {
	start := time.Now()
	resp, status, err := c.search(ctx, p)
	metrics.UpstreamRequestsTotal.WithLabelValues(status).Inc()
	metrics.UpstreamRequestDuration.Observe(time.Since(start).Seconds())
	return resp, err
}

func (c *Client) search(ctx context.Context, p Params) (*SearchResponse, string, error) {
	u, err := c.buildURL(p)
	if err != nil {
		return nil, metrics.StatusNetworkError, &domain.NetworkError{Op: searchOp, Message: err.Error(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, metrics.StatusNetworkError, &domain.NetworkError{Op: searchOp, Message: err.Error(), Err: err}
	}
	req.Header.Set("Accept", constants.MimeTypeJSON)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, metrics.StatusNetworkError, &domain.NetworkError{Op: searchOp, Message: transportMessage(err), Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // deferred cleanup

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, metrics.StatusHTTPError, &domain.NetworkError{Op: searchOp, Message: msg, StatusCode: resp.StatusCode}
	}

	var out SearchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, constants.MaxUpstreamBodyBytes)).Decode(&out); err != nil {
		return nil, metrics.StatusDecodeError, &domain.NetworkError{Op: searchOp, Message: "invalid response body: " + err.Error(), Err: err}
	}
	return &out, metrics.StatusOK, nil
}

func (c *Client) buildURL(p Params) (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	q := u.Query()
	q.Set("term", p.Term)
	if p.Media != "" {
		q.Set("media", string(p.Media))
	}
	if p.Country != "" {
		q.Set("country", p.Country)
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func transportMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	var uErr *url.Error
	if errors.As(err, &uErr) {
		if uErr.Timeout() {
			return "request timed out"
		}
		return uErr.Err.Error()
	}
	return err.Error()
}
