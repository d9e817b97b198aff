// Package metrics exposes dispatch activity as Prometheus metrics.
package metrics

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
)

// Assignment outcome label values.
const (
	OutcomeAssigned           = "assigned"
	OutcomeAlreadyAssigned    = "already_assigned"
	OutcomeCourierUnavailable = "courier_unavailable"
	OutcomeNotFound           = "not_found"
	OutcomeRejected           = "rejected"
	OutcomeError              = "error"
)

// DispatchMetrics implements ports.DispatchObserver on top of Prometheus
// collectors.
type DispatchMetrics struct {
	assignments        *prometheus.CounterVec
	assignmentDuration prometheus.Histogram
	rankedCandidates   prometheus.Histogram
	rankingDuration    prometheus.Histogram
	transitions        *prometheus.CounterVec
}

// NewDispatchMetrics creates the collectors and registers them with reg.
func NewDispatchMetrics(reg prometheus.Registerer) (*DispatchMetrics, error) {
	m := &DispatchMetrics{
		assignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_assignments_total",
			Help: "Total number of assignment attempts by outcome",
		}, []string{"outcome"}),
		assignmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dispatch_assignment_duration_seconds",
			Help:    "Duration of assignment attempts, lock wait included",
			Buckets: prometheus.DefBuckets,
		}),
		rankedCandidates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dispatch_ranked_candidates",
			Help:    "Number of couriers ranked per FindBestCourier call",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100, 200},
		}),
		rankingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dispatch_ranking_duration_seconds",
			Help:    "Time spent scoring and sorting candidates",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_order_status_transitions_total",
			Help: "Total number of order status transitions recorded by dispatch",
		}, []string{"event"}),
	}

	for _, c := range []prometheus.Collector{
		m.assignments, m.assignmentDuration, m.rankedCandidates, m.rankingDuration, m.transitions,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// AssignmentFinished counts one assignment attempt.
func (m *DispatchMetrics) AssignmentFinished(err error, elapsed time.Duration) {
	m.assignments.WithLabelValues(outcome(err)).Inc()
	m.assignmentDuration.Observe(elapsed.Seconds())
}

// CandidatesRanked records the size and duration of one ranking.
func (m *DispatchMetrics) CandidatesRanked(count int, elapsed time.Duration) {
	m.rankedCandidates.Observe(float64(count))
	m.rankingDuration.Observe(elapsed.Seconds())
}

// StatusTransitioned counts one committed ledger entry.
func (m *DispatchMetrics) StatusTransitioned(transition services.Transition) {
	m.transitions.WithLabelValues(transition.Event).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeAssigned
	case errors.Is(err, errs.ErrAlreadyAssigned):
		return OutcomeAlreadyAssigned
	case errors.Is(err, errs.ErrCourierUnavailable):
		return OutcomeCourierUnavailable
	case errors.Is(err, errs.ErrObjectNotFound):
		return OutcomeNotFound
	case errors.Is(err, errs.ErrStorage):
		return OutcomeError
	default:
		return OutcomeRejected
	}
}
