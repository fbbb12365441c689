package intake

import (
	"errors"
	"fmt"
)

var (
	// ErrLookupMiss means a geocode lookup produced nothing usable: no match,
	// timeout, transport failure or a bad response. It never leaves the package.
	ErrLookupMiss = errors.New("intake: lookup miss")

	ErrWrongStage       = errors.New("intake: not allowed at this stage")
	ErrSubmitInProgress = errors.New("intake: submission already in progress")
	ErrClosed           = errors.New("intake: workflow closed")
)

// ValidationError reports a missing or malformed field. It blocks progress
// until the user corrects the field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// SubmissionFailure wraps a failed attempt to store a quote. Nothing is
// cleared, so the same submission can be retried.
type SubmissionFailure struct {
	Err error
}

func (e *SubmissionFailure) Error() string {
	return "submit quote: " + e.Err.Error()
}

func (e *SubmissionFailure) Unwrap() error { return e.Err }
