package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReconciliationMetrics records matcher run outcomes.
type ReconciliationMetrics struct {
	duration   *prometheus.HistogramVec
	links      *prometheus.CounterVec
	unresolved prometheus.Counter
}

// NewReconciliationMetrics registers the matcher metrics on the provided
// registerer.
func NewReconciliationMetrics(reg prometheus.Registerer) *ReconciliationMetrics {
	if reg == nil {
		return &ReconciliationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reconciliation_run_duration_seconds",
		Help:    "Duration of reconciliation runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})
	links := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reconciliation_links_total",
		Help: "Settlement links produced by apply runs, by outcome.",
	}, []string{"outcome"})
	unresolved := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reconciliation_unresolved_records_total",
		Help: "Cost records a run could not find a settlement item for.",
	})
	reg.MustRegister(duration, links, unresolved)
	return &ReconciliationMetrics{
		duration:   duration,
		links:      links,
		unresolved: unresolved,
	}
}

// ObserveRun records the duration of a run in the given mode.
func (r *ReconciliationMetrics) ObserveRun(mode string, duration time.Duration) {
	if r == nil || r.duration == nil {
		return
	}
	r.duration.WithLabelValues(normalizeLabel(mode)).Observe(duration.Seconds())
}

// AddLinks adds to the link counters for both outcomes.
func (r *ReconciliationMetrics) AddLinks(created, existing int) {
	if r == nil || r.links == nil {
		return
	}
	r.links.WithLabelValues("created").Add(float64(created))
	r.links.WithLabelValues("existing").Add(float64(existing))
}

// AddUnresolved counts records no settlement item could be found for.
func (r *ReconciliationMetrics) AddUnresolved(count int) {
	if r == nil || r.unresolved == nil {
		return
	}
	r.unresolved.Add(float64(count))
}
