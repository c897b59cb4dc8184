// Package metrics holds the Prometheus instruments for registration
// submissions. Collectors are registered with the global registry, so
// exposing promhttp.Handler is enough to publish them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-accountform/pkg/registration"
)

// Outcome label values.
const (
	OutcomeRejectedLocally = "rejected_locally"
	OutcomeSucceeded       = "succeeded"
	OutcomeFailed          = "failed"
)

var (
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accountform_submissions_total",
			Help: "Submission attempts by outcome.",
		}, []string{"outcome"})

	SubmitDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "accountform_submit_duration_seconds",
			Help:    "Time spent waiting for the backend on network submissions.",
			Buckets: prometheus.DefBuckets,
		})
)

func init() {
	prometheus.MustRegister(Submissions, SubmitDuration)
}

// Observe is a registration phase observer. Install it with
// registration.WithPhaseObserver(metrics.Observe).
func Observe(t registration.Transition) {
	if !t.To.Terminal() {
		return
	}
	switch t.To {
	case registration.PhaseRejectedLocally:
		Submissions.WithLabelValues(OutcomeRejectedLocally).Inc()
	case registration.PhaseSucceeded:
		Submissions.WithLabelValues(OutcomeSucceeded).Inc()
		SubmitDuration.Observe(t.Elapsed.Seconds())
	case registration.PhaseFailed:
		Submissions.WithLabelValues(OutcomeFailed).Inc()
		SubmitDuration.Observe(t.Elapsed.Seconds())
	}
}
