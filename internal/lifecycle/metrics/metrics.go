package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the lifecycle module.
// Tracks transition counts by kind and critical path durations.
type Metrics struct {
	Transitions        *prometheus.CounterVec
	TransitionFailures *prometheus.CounterVec
	IssueDuration      prometheus.Histogram
	UpdateDuration     prometheus.Histogram
	RevokeDuration     prometheus.Histogram
}

// New creates a new Metrics instance with all lifecycle module metrics registered.
func New() *Metrics {
	return &Metrics{
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dcert_lifecycle_transitions_total",
			Help: "Total number of completed lifecycle transitions by kind",
		}, []string{"kind"}),
		TransitionFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dcert_lifecycle_transition_failures_total",
			Help: "Total number of failed lifecycle transitions by kind",
		}, []string{"kind"}),
		IssueDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dcert_lifecycle_issue_duration_seconds",
			Help:    "Duration of Issue operations including network writes",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		UpdateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dcert_lifecycle_update_duration_seconds",
			Help:    "Duration of Update/Renew operations including network writes",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		RevokeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dcert_lifecycle_revoke_duration_seconds",
			Help:    "Duration of Revoke operations including network writes",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncrementTransition records a completed transition of the given kind.
func (m *Metrics) IncrementTransition(kind string) {
	m.Transitions.WithLabelValues(kind).Inc()
}

// IncrementTransitionFailure records a failed transition of the given kind.
func (m *Metrics) IncrementTransitionFailure(kind string) {
	m.TransitionFailures.WithLabelValues(kind).Inc()
}

// ObserveIssue records the duration of an Issue operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveIssue(start time.Time) {
	m.IssueDuration.Observe(time.Since(start).Seconds())
}

// ObserveUpdate records the duration of an Update or Renew operation.
func (m *Metrics) ObserveUpdate(start time.Time) {
	m.UpdateDuration.Observe(time.Since(start).Seconds())
}

// ObserveRevoke records the duration of a Revoke operation.
func (m *Metrics) ObserveRevoke(start time.Time) {
	m.RevokeDuration.Observe(time.Since(start).Seconds())
}
