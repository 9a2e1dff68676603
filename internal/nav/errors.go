package nav

import (
	"context"
	"errors"
	"fmt"
)

// Error kinds. Structural kinds end the run as failed; the rest downgrade
// the outcome instead of aborting.
var (
	ErrNotFound         = errors.New("target window not found")
	ErrFocusUnavailable = errors.New("focus unavailable")
	ErrInjection        = errors.New("keystroke injection failed")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnconfirmed      = errors.New("navigation unconfirmed")
)

// NavError attaches the error kind and the stage it arose in to an
// underlying cause.
type NavError struct {
	Kind  error
	Stage Stage
	Err   error
}

func (e *NavError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Stage, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Kind)
}

func (e *NavError) Unwrap() error {
	return e.Err
}

// Is matches against the error kind, so errors.Is(err, ErrNotFound) works
// regardless of the wrapped cause.
func (e *NavError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

func wrapErr(kind error, stage Stage, err error) *NavError {
	return &NavError{Kind: kind, Stage: stage, Err: err}
}

// IsFatal reports whether the error kind aborts the run.
func IsFatal(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInjection) ||
		errors.Is(err, ErrInvalidArgument)
}

// KindName returns the wire name of the error's kind, or "" for nil.
func KindName(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not-found"
	case errors.Is(err, ErrFocusUnavailable):
		return "focus-unavailable"
	case errors.Is(err, ErrInjection):
		return "injection-error"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid-argument"
	case errors.Is(err, ErrUnconfirmed):
		return "unconfirmed"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "internal"
	}
}
