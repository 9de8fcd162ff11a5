// Package metrics provides Prometheus instrumentation for the admin client.
//
// It pre-defines the metrics the transport and sync layers record: outbound
// API call latency and outcomes, resource-cache effectiveness, and mutation
// results. Expose them from a host process with Handler():
//
//	http.Handle("/metrics", metrics.Handler())
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration tracks outbound API call latency by method, path and status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sayohat",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Duration of outbound API requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all outbound API requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sayohat",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of outbound API requests.",
		},
		[]string{"method", "path", "status"},
	)

	// CacheFetches counts resource-cache fetch outcomes by resource and result:
	// "hit" (served from cache), "miss" (network fetch), "coalesced" (joined an
	// in-flight fetch), "discarded" (stale generation dropped).
	CacheFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sayohat",
			Subsystem: "cache",
			Name:      "fetches_total",
			Help:      "Resource cache fetch outcomes.",
		},
		[]string{"resource", "result"},
	)

	// MutationTotal counts mutation pipeline outcomes.
	MutationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sayohat",
			Subsystem: "mutation",
			Name:      "total",
			Help:      "Mutation pipeline outcomes by operation and result.",
		},
		[]string{"operation", "result"},
	)
)

var registry = prometheus.NewRegistry()

func init() {
	registry.MustRegister(
		RequestDuration,
		RequestTotal,
		CacheFetches,
		MutationTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler returns the scrape endpoint for the client registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
