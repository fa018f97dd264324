package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "itunescache"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.3, 0.5, 1, 2, 5, 10},
	}, []string{"method", "route"})

	UpstreamRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total requests to the iTunes search API by result status.",
	}, []string{"status"})

	UpstreamRequestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "iTunes search API request duration in seconds.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	CacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Search cache lookups by result (hit, miss, refresh).",
	}, []string{"result"})

	ItemsPersistedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "items_persisted_total",
		Help:      "Total search result items written to the store.",
	})

	ItemPersistFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "item_persist_failures_total",
		Help:      "Total search result items that failed to persist.",
	})
)

// Upstream status labels.
const (
	StatusOK           = "ok"
	StatusHTTPError    = "http_error"
	StatusNetworkError = "network_error"
	StatusDecodeError  = "decode_error"
)

// Cache lookup labels.
const (
	LookupHit     = "hit"
	LookupMiss    = "miss"
	LookupRefresh = "refresh"
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		UpstreamRequestsTotal,
		UpstreamRequestDuration,
		CacheLookupsTotal,
		ItemsPersistedTotal,
		ItemPersistFailuresTotal,
	)
}
