package result

import (
	"errors"
	"fmt"
)

// ErrUnspecifiedFailure stands in for the error of a Failure built from a nil error.
var ErrUnspecifiedFailure = errors.New("unspecified failure")

// Outcome is the tag of a Result as reported to observers.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Result is the outcome of resolving or executing a task.
type Result struct {
	value  any
	err    error
	failed bool
}

// Success builds a successful Result carrying value, which may be nil.
func Success(value any) Result {
	return Result{value: value}
}

// Failure builds a failed Result carrying err.
func Failure(err error) Result {
	if err == nil {
		err = ErrUnspecifiedFailure
	}
	return Result{err: err, failed: true}
}

// IsSuccess reports whether r is the Success variant.
func (r Result) IsSuccess() bool { return !r.failed }

// IsFailure reports whether r is the Failure variant.
func (r Result) IsFailure() bool { return r.failed }

// Value returns the success value. It is nil for failures.
func (r Result) Value() any { return r.value }

// Err returns the failure error. It is nil for successes.
func (r Result) Err() error { return r.err }

// Outcome returns the variant tag.
func (r Result) Outcome() Outcome {
	if r.failed {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

func (r Result) String() string {
	if r.failed {
		return fmt.Sprintf("Failure(%v)", r.err)
	}
	if r.value == nil {
		return "Success"
	}
	return fmt.Sprintf("Success(%v)", r.value)
}
