package registration

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoSubmitter is reported by Submit when the session was built without a
// Submitter.
var ErrNoSubmitter = errors.New("registration: submitter is nil")

// Submitter delivers a validated FormData to the backend. A nil error means
// the backend accepted the registration.
type Submitter interface {
	Submit(ctx context.Context, data FormData) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, data FormData) error

// Submit implements Submitter.
func (fn SubmitterFunc) Submit(ctx context.Context, data FormData) error {
	return fn(ctx, data)
}

// Result describes one finished submission attempt.
type Result struct {
	// Phase is the terminal phase reached by the attempt (RejectedLocally,
	// Succeeded or Failed). It is PhaseIdle when the attempt never started.
	Phase Phase
	// Data is the session's FormData once the attempt settled.
	Data FormData
	// Errors is the session's ErrorMap once the attempt settled.
	Errors ErrorMap
	// Notice is set when the attempt reached the network.
	Notice *Notice
	// Err carries the submitter error on PhaseFailed, or ErrSubmitInFlight.
	Err error
}

// Succeeded reports whether the backend accepted the registration.
func (r Result) Succeeded() bool {
	return r.Phase == PhaseSucceeded
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithValidator overrides the default validator.
func WithValidator(v *Validator) SessionOption {
	return func(s *Session) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithNotifier registers the notifier that shows success/failure notices.
func WithNotifier(n Notifier) SessionOption {
	return func(s *Session) {
		s.notifier = n
	}
}

// WithLogger attaches a logger. Sessions log nothing by default.
func WithLogger(logger *zap.SugaredLogger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSessionID pins the session identifier, for front ends that carry it
// across requests.
func WithSessionID(id string) SessionOption {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// WithChangeHook registers fn to run after every field change, with the
// updated FormData. Front ends use it to re-render bound controls.
func WithChangeHook(fn func(FormData)) SessionOption {
	return func(s *Session) {
		if fn != nil {
			s.changeHooks = append(s.changeHooks, fn)
		}
	}
}

// WithPhaseObserver registers fn to receive every phase transition.
func WithPhaseObserver(fn func(Transition)) SessionOption {
	return func(s *Session) {
		if fn != nil {
			s.observers = append(s.observers, fn)
		}
	}
}

// Session owns the FormData and ErrorMap of one form instance and runs the
// change and submit flows against them. Hooks and observers are invoked
// outside the session lock, so they may read the session.
type Session struct {
	mu       sync.Mutex
	id       string
	data     FormData
	errors   ErrorMap
	phase    Phase
	inFlight bool

	submitter   Submitter
	validator   *Validator
	notifier    Notifier
	logger      *zap.SugaredLogger
	changeHooks []func(FormData)
	observers   []func(Transition)
}

// NewSession creates a session with empty FormData and ErrorMap.
func NewSession(submitter Submitter, options ...SessionOption) *Session {
	s := &Session{
		id:        uuid.NewString(),
		errors:    make(ErrorMap),
		phase:     PhaseIdle,
		submitter: submitter,
		validator: defaultValidator,
		logger:    zap.NewNop().Sugar(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Data returns a copy of the current FormData.
func (s *Session) Data() FormData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// Errors returns a copy of the current ErrorMap.
func (s *Session) Errors() ErrorMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors.Clone()
}

// Snapshot returns copies of the FormData and ErrorMap taken under one lock.
func (s *Session) Snapshot() (FormData, ErrorMap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data, s.errors.Clone()
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Change replaces one field of FormData. No validation runs here; errors are
// only recomputed by Submit.
func (s *Session) Change(field Field, value string) error {
	s.mu.Lock()
	next, err := s.data.With(field, value)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.data = next
	s.mu.Unlock()

	for _, hook := range s.changeHooks {
		hook(next)
	}
	return nil
}

// Reset restores the state the session had when it was created.
func (s *Session) Reset() {
	s.mu.Lock()
	s.data = FormData{}
	s.errors = make(ErrorMap)
	s.mu.Unlock()

	for _, hook := range s.changeHooks {
		hook(FormData{})
	}
}

// Submit runs one submission attempt: validate, then either store the errors
// and stop, or clear them and hand FormData to the submitter. On success the
// form is reset; on failure FormData is left untouched and nothing is retried.
func (s *Session) Submit(ctx context.Context) Result {
	var pending []Transition

	s.mu.Lock()
	if s.inFlight {
		result := s.resultLocked(PhaseIdle, nil, ErrSubmitInFlight)
		s.mu.Unlock()
		s.logger.Debugw("registration submit ignored", "session", s.id, "reason", "in flight")
		return result
	}
	s.inFlight = true
	pending = append(pending, s.setPhaseLocked(PhaseValidating, 0))

	data := s.data
	errs := s.validator.Validate(data)
	if !errs.Empty() {
		s.errors = errs
		pending = append(pending,
			s.setPhaseLocked(PhaseRejectedLocally, 0),
			s.setPhaseLocked(PhaseIdle, 0),
		)
		s.inFlight = false
		result := s.resultLocked(PhaseRejectedLocally, nil, nil)
		s.mu.Unlock()

		s.emit(pending)
		s.logger.Infow("registration rejected locally", "session", s.id, "fields", fieldNames(errs))
		return result
	}

	s.errors = make(ErrorMap)
	pending = append(pending, s.setPhaseLocked(PhaseSubmitting, 0))
	s.mu.Unlock()
	s.emit(pending)
	pending = pending[:0]

	submitter := s.submitter
	started := time.Now()
	var err error
	if submitter == nil {
		err = ErrNoSubmitter
	} else {
		err = submitter.Submit(ctx, data)
	}
	elapsed := time.Since(started)

	var (
		notice Notice
		final  Phase
	)

	s.mu.Lock()
	if err == nil {
		notice = successNotice()
		final = PhaseSucceeded
		s.data = FormData{}
		s.errors = make(ErrorMap)
	} else {
		notice = failureNotice(err)
		final = PhaseFailed
	}
	pending = append(pending,
		s.setPhaseLocked(final, elapsed),
		s.setPhaseLocked(PhaseIdle, 0),
	)
	s.inFlight = false
	result := s.resultLocked(final, &notice, err)
	s.mu.Unlock()

	s.emit(pending)
	if err == nil {
		s.logger.Infow("registration submitted", "session", s.id, "elapsed", elapsed)
		for _, hook := range s.changeHooks {
			hook(FormData{})
		}
	} else {
		s.logger.Warnw("registration submission failed", "session", s.id, "elapsed", elapsed, "err", err)
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, notice)
	}
	return result
}

func (s *Session) setPhaseLocked(next Phase, elapsed time.Duration) Transition {
	t := Transition{Session: s.id, From: s.phase, To: next, Elapsed: elapsed}
	s.phase = next
	return t
}

func (s *Session) resultLocked(phase Phase, notice *Notice, err error) Result {
	return Result{
		Phase:  phase,
		Data:   s.data,
		Errors: s.errors.Clone(),
		Notice: notice,
		Err:    err,
	}
}

func (s *Session) emit(transitions []Transition) {
	for _, t := range transitions {
		s.logger.Debugw("registration phase", "session", t.Session, "from", t.From.String(), "to", t.To.String())
		for _, observer := range s.observers {
			observer(t)
		}
	}
}

func fieldNames(errs ErrorMap) []string {
	fields := errs.Fields()
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, string(field))
	}
	return out
}
