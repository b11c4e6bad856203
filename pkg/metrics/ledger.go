package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics records metadata for order ledger operations.
type LedgerMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewLedgerMetrics registers the ledger metrics on the provided registerer.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_op_duration_seconds",
		Help:    "Duration of order ledger operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_op_success",
		Help: "Successful order ledger operations.",
	}, []string{"op"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_op_failure",
		Help: "Failed order ledger operations.",
	}, []string{"op"})
	reg.MustRegister(duration, success, failure)
	return &LedgerMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named operation.
func (l *LedgerMetrics) ObserveDuration(op string, duration time.Duration) {
	if l == nil || l.duration == nil {
		return
	}
	l.duration.WithLabelValues(normalizeLabel(op)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named operation.
func (l *LedgerMetrics) IncSuccess(op string) {
	if l == nil || l.success == nil {
		return
	}
	l.success.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncFailure increments the failure counter for the named operation.
func (l *LedgerMetrics) IncFailure(op string) {
	if l == nil || l.failure == nil {
		return
	}
	l.failure.WithLabelValues(normalizeLabel(op)).Inc()
}

func normalizeLabel(label string) string {
	if label == "" {
		return "unknown"
	}
	return label
}
