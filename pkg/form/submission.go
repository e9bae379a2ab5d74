package form

import (
	"context"
	"sync"
)

// Outcome is the final state of a submission.
type Outcome string

const (
	OutcomePending    Outcome = "pending"
	OutcomeCompleted  Outcome = "completed"
	OutcomeSuperseded Outcome = "superseded"
)

// Submission is one simulated submission. It completes once, either when the
// delay elapses or when a reset supersedes it.
type Submission struct {
	id     string
	values map[string]string
	done   chan struct{}

	once    sync.Once
	mu      sync.Mutex
	outcome Outcome
}

func newSubmission(id string, values map[string]string) *Submission {
	return &Submission{
		id:      id,
		values:  values,
		done:    make(chan struct{}),
		outcome: OutcomePending,
	}
}

// ID returns the submission identifier.
func (s *Submission) ID() string {
	return s.id
}

// Values returns a copy of the values captured when the submission started.
func (s *Submission) Values() map[string]string {
	return cloneValues(s.values)
}

// Done is closed when the submission completes or is superseded.
func (s *Submission) Done() <-chan struct{} {
	return s.done
}

// Outcome reports the current state.
func (s *Submission) Outcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Wait blocks until the submission finishes or ctx is done.
func (s *Submission) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-s.done:
		return s.Outcome(), nil
	case <-ctx.Done():
		return OutcomePending, ctx.Err()
	}
}

func (s *Submission) finish(outcome Outcome) {
	s.once.Do(func() {
		s.mu.Lock()
		s.outcome = outcome
		s.mu.Unlock()
		close(s.done)
	})
}
