// Package metrics exports request outcomes and provider latency in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"meeting-notes/internal/apperr"
)

const (
	OpSummarize = "summarize"
	OpNotify    = "notify"

	outcomeSuccess = "success"
	outcomeUnknown = "error"
)

var defaultLatencyBuckets = []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60}

// Recorder owns a private registry so tests can build as many as they like.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// New creates a recorder with its own registry plus Go and process collectors.
func New() *Recorder {
	registry := prometheus.NewRegistry()
	r := &Recorder{
		registry: registry,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "meeting_notes",
				Name:      "requests_total",
				Help:      "Handled requests by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "meeting_notes",
				Name:      "provider_latency_seconds",
				Help:      "Latency of model and delivery provider calls in seconds",
				Buckets:   defaultLatencyBuckets,
			},
			[]string{"operation"},
		),
	}
	registry.MustRegister(
		r.requests,
		r.latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveRequest counts one handled request. The outcome label is "success"
// or the apperr kind of err.
func (r *Recorder) ObserveRequest(operation string, err error) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(operation, Outcome(err)).Inc()
}

// ObserveProvider records how long a provider call took.
func (r *Recorder) ObserveProvider(operation string, d time.Duration) {
	if r == nil {
		return
	}
	r.latency.WithLabelValues(operation).Observe(d.Seconds())
}

// Registry exposes the underlying registry for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry on /metrics.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Outcome maps an error to a metrics label.
func Outcome(err error) string {
	if err == nil {
		return outcomeSuccess
	}
	if kind := apperr.KindOf(err); kind != "" {
		return string(kind)
	}
	return outcomeUnknown
}
