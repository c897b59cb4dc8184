package registration

import "time"

// Phase is the position of a session inside one submission attempt.
//
//	Idle -> Validating -> RejectedLocally -> Idle
//	Idle -> Validating -> Submitting -> Succeeded -> Idle
//	Idle -> Validating -> Submitting -> Failed -> Idle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseRejectedLocally
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseRejectedLocally:
		return "rejected_locally"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether p ends an attempt.
func (p Phase) Terminal() bool {
	return p == PhaseRejectedLocally || p == PhaseSucceeded || p == PhaseFailed
}

// Transition is delivered to phase observers for every phase change.
// Elapsed is the time spent waiting on the backend and is only set when
// leaving PhaseSubmitting.
type Transition struct {
	Session string
	From    Phase
	To      Phase
	Elapsed time.Duration
}
