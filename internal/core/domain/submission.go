package domain

import (
	"errors"
	"fmt"
)

type SubmissionState string

const (
	StateValidating SubmissionState = "validating"
	StateUploading  SubmissionState = "uploading"
	StatePersisting SubmissionState = "persisting"
	StateNotifying  SubmissionState = "notifying"
	StateDone       SubmissionState = "done"
	StateFailed     SubmissionState = "failed"
)

// ErrAlreadyPersisted is returned when a submission is asked to fail after its booking was
// committed. Steps after persistence are never compensated.
var ErrAlreadyPersisted = errors.New("submission already persisted")

var submissionTransitions = map[SubmissionState][]SubmissionState{
	StateValidating: {StateUploading, StatePersisting},
	StateUploading:  {StatePersisting},
	StatePersisting: {StateNotifying},
	StateNotifying:  {StateDone},
}

// Submission tracks one pass through validate -> upload -> persist -> notify.
type Submission struct {
	State    SubmissionState
	FailedAt SubmissionState
	Err      error
	History  []SubmissionState
}

func NewSubmission() *Submission {
	return &Submission{
		State:   StateValidating,
		History: []SubmissionState{StateValidating},
	}
}

func (s *Submission) Advance(next SubmissionState) error {
	for _, allowed := range submissionTransitions[s.State] {
		if allowed == next {
			s.State = next
			s.History = append(s.History, next)
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.State, next)
}

// Persisted reports whether the booking record has been committed.
func (s *Submission) Persisted() bool {
	return s.State == StateNotifying || s.State == StateDone
}

func (s *Submission) Fail(err error) error {
	if s.Persisted() {
		return ErrAlreadyPersisted
	}
	if s.State == StateFailed {
		return nil
	}
	s.FailedAt = s.State
	s.State = StateFailed
	s.Err = err
	s.History = append(s.History, StateFailed)
	return nil
}
