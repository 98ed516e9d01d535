package mcmc

import (
	"errors"
	"fmt"
)

// Domain errors for sampling operations.
var (
	// ErrInvalidConfig indicates an unusable run configuration.
	ErrInvalidConfig = errors.New("mcmc: invalid run configuration")

	// ErrInvalidParams indicates a walker position with NaN or Inf components.
	ErrInvalidParams = errors.New("mcmc: invalid parameters (NaN or Inf detected)")

	// ErrNoValidStart indicates walker initialization could not find a
	// finite-density starting point.
	ErrNoValidStart = errors.New("mcmc: no finite-density starting point found")

	// ErrPriorMismatch indicates priors that do not line up with the
	// model's parameters.
	ErrPriorMismatch = errors.New("mcmc: priors do not match model parameters")

	// ErrUnknownMove indicates an unrecognized move name.
	ErrUnknownMove = errors.New("mcmc: unknown move")
)

// SampleError wraps an error with its position in the run.
type SampleError struct {
	Step    int
	Walker  int
	Wrapped error
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("step %d (walker %d): %v", e.Step, e.Walker, e.Wrapped)
}

func (e *SampleError) Unwrap() error {
	return e.Wrapped
}
