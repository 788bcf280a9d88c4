// Package metrics provides the Prometheus registry used by the infinite-scroll packages.
// All metrics are defined in their respective packages (pagination, client, cache,
// rowsource) via promauto to keep packages self-contained.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Handler returns the HTTP handler exposing the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Metrics Documentation
//
// Controller Metrics (pkg/pagination):
//   - infinite_scroll_fetches_total{trigger} (Counter): Fetches issued (scroll, reset, replacement)
//   - infinite_scroll_pages_discarded_total (Counter): Stale pages dropped after a mid-fetch reset
//   - infinite_scroll_fetch_failures_total (Counter): Fetches that failed
//   - infinite_scroll_rows_appended_total (Counter): Rows handed to the append callback
//
// DataSource Metrics (pkg/client):
//   - infinite_scroll_datasource_requests_total{status} (Counter): Requests by HTTP status (or cached/network_error)
//   - infinite_scroll_datasource_request_duration_seconds (Histogram): Request duration
//   - infinite_scroll_datasource_errors_total{class} (Counter): Errors by class (client, server, network, decode)
//
// Cache Metrics (pkg/cache):
//   - infinite_scroll_cache_hits_total (Counter): Page cache hits
//   - infinite_scroll_cache_misses_total (Counter): Page cache misses
//   - infinite_scroll_cache_errors_total{operation} (Counter): Cache operation errors
//
// Reference DataSource Metrics (pkg/rowsource):
//   - infinite_scroll_rows_served_total (Counter): Rows served
//
// Example Prometheus Queries:
//
//   # Stale page rate
//   rate(infinite_scroll_pages_discarded_total[5m]) / rate(infinite_scroll_fetches_total[5m])
//
//   # Fetch failure rate
//   rate(infinite_scroll_fetch_failures_total[5m])
//
//   # P95 DataSource latency
//   histogram_quantile(0.95, rate(infinite_scroll_datasource_request_duration_seconds_bucket[5m]))
