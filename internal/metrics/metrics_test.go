package metrics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-accountform/internal/metrics"
	"github.com/goliatone/go-accountform/pkg/registration"
	"github.com/goliatone/go-accountform/pkg/testsupport"
)

func count(outcome string) float64 {
	return testutil.ToFloat64(metrics.Submissions.WithLabelValues(outcome))
}

func TestObserve_CountsOutcomes(t *testing.T) {
	rejected := count(metrics.OutcomeRejectedLocally)
	succeeded := count(metrics.OutcomeSucceeded)
	failed := count(metrics.OutcomeFailed)

	sub := &testsupport.StaticSubmitter{}
	session := registration.NewSession(sub, registration.WithPhaseObserver(metrics.Observe))

	session.Submit(context.Background())

	testsupport.Fill(t, session, testsupport.ValidFormData())
	session.Submit(context.Background())

	sub.Err = errors.New("offline")
	testsupport.Fill(t, session, testsupport.ValidFormData())
	session.Submit(context.Background())

	if got := count(metrics.OutcomeRejectedLocally) - rejected; got != 1 {
		t.Fatalf("rejected delta: want 1, got %v", got)
	}
	if got := count(metrics.OutcomeSucceeded) - succeeded; got != 1 {
		t.Fatalf("succeeded delta: want 1, got %v", got)
	}
	if got := count(metrics.OutcomeFailed) - failed; got != 1 {
		t.Fatalf("failed delta: want 1, got %v", got)
	}
}

func TestObserve_IgnoresIntermediatePhases(t *testing.T) {
	before := testutil.CollectAndCount(metrics.Submissions)
	metrics.Observe(registration.Transition{To: registration.PhaseValidating})
	metrics.Observe(registration.Transition{To: registration.PhaseSubmitting})
	metrics.Observe(registration.Transition{To: registration.PhaseIdle})
	if after := testutil.CollectAndCount(metrics.Submissions); after != before {
		t.Fatalf("intermediate phases should not create series: %d -> %d", before, after)
	}
}
