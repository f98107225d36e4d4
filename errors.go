package cmeans

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned when an engine is constructed with
	// an unusable configuration (cluster count, object set, threshold, ...).
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrConvergenceNotReached is returned when the iteration cap is hit
	// before the membership change drops below the threshold.
	ErrConvergenceNotReached = errors.New("convergence not reached")

	// ErrDimensionMismatch is returned when a membership matrix of the wrong
	// shape is supplied.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// ConfigError indicates an invalid configuration value.
//
// It matches ErrInvalidConfiguration via errors.Is. The original underlying
// error (if any) can be accessed via errors.Unwrap.
type ConfigError struct {
	Field string
	Value any
	cause error
}

func (e *ConfigError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("invalid configuration: %s=%v: %v", e.Field, e.Value, e.cause)
	}
	return fmt.Sprintf("invalid configuration: %s=%v", e.Field, e.Value)
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfiguration }

func (e *ConfigError) Unwrap() error { return e.cause }

// ConvergenceError indicates that an engine stopped at its iteration cap.
//
// It matches ErrConvergenceNotReached via errors.Is.
type ConvergenceError struct {
	Algorithm  string
	Iterations int
	Change     float64
	Threshold  float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s: convergence not reached after %d iterations (change %g >= threshold %g)",
		e.Algorithm, e.Iterations, e.Change, e.Threshold)
}

func (e *ConvergenceError) Is(target error) bool { return target == ErrConvergenceNotReached }

// MembershipShapeError indicates a membership matrix shape mismatch.
//
// It matches ErrDimensionMismatch via errors.Is.
type MembershipShapeError struct {
	ExpectedRows, ExpectedCols int
	ActualRows, ActualCols     int
}

func (e *MembershipShapeError) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %dx%d membership matrix, got %dx%d",
		e.ExpectedRows, e.ExpectedCols, e.ActualRows, e.ActualCols)
}

func (e *MembershipShapeError) Is(target error) bool { return target == ErrDimensionMismatch }
