// Package metrics collects Prometheus metrics for update runs. Metrics
// are optional: the collector is only created (and the listener only
// started) when a metrics address is configured.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the update metrics.
type Collector struct {
	updates  *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewCollector creates and registers the update metrics on the default
// registry. Call at most once per process.
func NewCollector() *Collector {
	c := &Collector{
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ddnsd_updates_total",
			Help: "Total number of update attempts by job and outcome",
		}, []string{"job", "outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ddnsd_update_duration_seconds",
			Help:    "Wall time of one update attempt including delay and retries",
			Buckets: prometheus.DefBuckets,
		}),
	}

	prometheus.MustRegister(c.updates)
	prometheus.MustRegister(c.duration)
	return c
}

// RecordOutcome counts one finished update attempt.
func (c *Collector) RecordOutcome(job, outcome string, seconds float64) {
	c.updates.WithLabelValues(job, outcome).Inc()
	c.duration.Observe(seconds)
}

// Serve exposes /metrics on addr. It blocks, so run it in its own
// goroutine; errors are returned when the listener fails.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
