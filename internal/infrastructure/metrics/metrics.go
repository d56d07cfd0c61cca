// Package metrics exposes gateway collectors to prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/0xcro3dile/neurobot-go/internal/domain/ports"
)

const namespace = "neurobot"

// Metrics implements ports.Metrics.
type Metrics struct {
	upstreamRequests  *prometheus.CounterVec
	upstreamDuration  *prometheus.HistogramVec
	documentTruncated prometheus.Counter
	exports           prometheus.Counter

	gatherer prometheus.Gatherer
}

// New registers the gateway collectors on a fresh registry, together with
// the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registers the gateway collectors on reg.
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Model calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of model calls that were attempted.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
		}, []string{"operation"}),
		documentTruncated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_truncated_total",
			Help:      "Uploaded documents whose text was cut to the length limit.",
		}),
		exports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Conversations rendered to PDF.",
		}),
		gatherer: gatherer,
	}
	reg.MustRegister(m.upstreamRequests, m.upstreamDuration, m.documentTruncated, m.exports)
	return m
}

// ObserveUpstream records one model call. Unconfigured calls never reach
// the network and are not timed.
func (m *Metrics) ObserveUpstream(operation, outcome string, seconds float64) {
	m.upstreamRequests.WithLabelValues(operation, outcome).Inc()
	if outcome != ports.OutcomeUnconfigured {
		m.upstreamDuration.WithLabelValues(operation).Observe(seconds)
	}
}

func (m *Metrics) DocumentTruncated() { m.documentTruncated.Inc() }

func (m *Metrics) ConversationExported() { m.exports.Inc() }

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
