// Package metrics exports coordinator operation counters and latencies
// to Prometheus.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/f3rmion/tbls/session"
	"github.com/f3rmion/tbls/tbls"
)

const namespace = "tblsd"

// Metrics implements session.Recorder on a private registry.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	sessions   prometheus.GaugeFunc
}

// New registers the collectors. sessions reports the live session count.
func New(sessions func() int) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Protocol operations by name and result.",
		}, []string{"op", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency of protocol operations.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"op"}),
		sessions: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions",
			Help:      "Number of derived sessions held in memory.",
		}, func() float64 { return float64(sessions()) }),
	}
	reg.MustRegister(m.operations, m.duration, m.sessions)
	return m
}

// Observe implements session.Recorder.
func (m *Metrics) Observe(op string, d time.Duration, err error) {
	m.operations.WithLabelValues(op, Result(err)).Inc()
	m.duration.WithLabelValues(op).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Result classifies err into a low-cardinality label value.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, tbls.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, session.ErrUnknownSession):
		return "unknown_session"
	case errors.Is(err, tbls.ErrRandomnessUnavailable):
		return "no_randomness"
	default:
		return "error"
	}
}

var _ session.Recorder = (*Metrics)(nil)
