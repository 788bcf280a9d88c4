package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch trigger labels.
const (
	triggerScroll      = "scroll"
	triggerReset       = "reset"
	triggerReplacement = "replacement"
)

// Prometheus metrics for controller operations.
var (
	fetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "infinite_scroll_fetches_total",
		Help: "Total fetches issued by trigger",
	}, []string{"trigger"})

	pagesDiscardedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "infinite_scroll_pages_discarded_total",
		Help: "Total pages discarded because a reset arrived while they were in flight",
	})

	fetchFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "infinite_scroll_fetch_failures_total",
		Help: "Total fetches that failed",
	})

	rowsAppendedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "infinite_scroll_rows_appended_total",
		Help: "Total rows handed to the append callback",
	})
)
