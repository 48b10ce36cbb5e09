// Package metrics holds the optional Prometheus recorder a Channel can
// be configured with via WithMetrics. Unlike a standalone service, a
// library must not force its metrics onto the process-wide default
// registry — every metric here is scoped to whatever *prometheus.Registry
// the caller supplies, so multiple Channels (and multiple libraries) in
// one process never collide.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is the set of metrics a Channel reports against one query
// engine instance.
type Recorder struct {
	QueriesTotal  *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec
	TimeoutsTotal *prometheus.CounterVec
	InFlight      prometheus.Gauge
}

// NewRecorder registers a fresh set of metrics against reg and returns
// a Recorder wrapping them. Pass prometheus.NewRegistry() for an
// isolated registry, or prometheus.DefaultRegisterer-backed one built
// with prometheus.WrapRegistererWith if labels need to distinguish
// several Channels sharing a process's default registry.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		QueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "caresgo_queries_total",
			Help: "Total number of queries submitted, by record type.",
		}, []string{"qtype"}),

		QueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "caresgo_query_duration_seconds",
			Help:    "Time from query submission to completion, successful or not.",
			Buckets: prometheus.DefBuckets,
		}, []string{"qtype", "status"}),

		TimeoutsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "caresgo_timeouts_total",
			Help: "Total number of queries that completed via the timeout sweep.",
		}, []string{"qtype"}),

		InFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "caresgo_queries_in_flight",
			Help: "Number of tasks currently in the Writing or Reading state.",
		}),
	}
}
