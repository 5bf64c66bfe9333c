package experiment

import (
	"errors"
	"fmt"
)

// Domain errors for experiment setup and runs.
var (
	// ErrNotSetup indicates Run or Step was called before Setup.
	ErrNotSetup = errors.New("experiment: not set up")

	// ErrParameterBounds indicates a run parameter is outside its valid range.
	ErrParameterBounds = errors.New("experiment: parameter out of valid bounds")

	// ErrInvalidDirection indicates a vec3 force without a usable direction.
	ErrInvalidDirection = errors.New("experiment: direction must have exactly 3 components")
)

// UnknownKindError is returned when a force spec names an unregistered kind.
type UnknownKindError struct {
	Kind      string
	Available []string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("experiment: unknown force kind %q (available: %v)", e.Kind, e.Available)
}

// UnknownPrecisionError is returned when a force spec names an unsupported precision.
type UnknownPrecisionError struct {
	Precision string
}

func (e *UnknownPrecisionError) Error() string {
	return fmt.Sprintf("experiment: unknown precision %q (want %s, %s or %s)", e.Precision, PrecisionF64, PrecisionF32, PrecisionVec3)
}

// SpecError wraps a setup error with the offending spec.
type SpecError struct {
	Index   int
	Name    string
	Wrapped error
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("force %d (%s): %v", e.Index, e.Name, e.Wrapped)
}

func (e *SpecError) Unwrap() error {
	return e.Wrapped
}
