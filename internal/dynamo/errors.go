package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownValue indicates an enumerated setting outside its accepted set.
	ErrUnknownValue = errors.New("dynamo: value not in accepted set")

	// ErrUnknownParam indicates a parameter name the system does not expose.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")

	// ErrTerminated indicates a step was requested on a finished episode.
	ErrTerminated = errors.New("dynamo: episode already terminated")

	// ErrContextCanceled indicates the rollout was interrupted.
	ErrContextCanceled = errors.New("dynamo: rollout canceled by context")

	// ErrDimensionMismatch indicates mismatched state/control dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// RolloutError wraps an error with the step at which it occurred.
type RolloutError struct {
	Step    int
	State   State
	Wrapped error
}

func (e *RolloutError) Error() string {
	return e.Wrapped.Error()
}

func (e *RolloutError) Unwrap() error {
	return e.Wrapped
}
