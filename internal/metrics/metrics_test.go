package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	Register(reg)

	CacheLookupsTotal.WithLabelValues(LookupHit).Inc()
	UpstreamRequestsTotal.WithLabelValues(StatusOK).Inc()
	HTTPRequestsTotal.WithLabelValues("GET", "/health", "200").Inc()

	n, err := testutil.GatherAndCount(reg,
		"itunescache_cache_lookups_total",
		"itunescache_upstream_requests_total",
		"itunescache_http_requests_total",
	)
	if err != nil {
		t.Fatalf("GatherAndCount failed: %v", err)
	}
	if n < 3 {
		t.Errorf("Expected at least 3 series, got %d", n)
	}
}

func TestRegister_Twice(t *testing.T) {
	reg := prometheus.NewRegistry()
	Register(reg)

	defer func() {
		if recover() == nil {
			t.Error("Expected duplicate registration to panic")
		}
	}()
	Register(reg)
}
