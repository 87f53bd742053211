package physics

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Construction failures, wrapped by ConstructionError.
var (
	// ErrNonPositiveMass indicates a body mass that is zero, negative or NaN.
	ErrNonPositiveMass = errors.New("physics: mass must be positive")

	// ErrNegativeRadius indicates a display radius below zero.
	ErrNegativeRadius = errors.New("physics: radius must not be negative")

	// ErrNonFinite indicates a NaN or infinite position, velocity or parameter.
	ErrNonFinite = errors.New("physics: value must be finite")

	// ErrNonPositiveTimeStep indicates a time step that is zero or negative.
	ErrNonPositiveTimeStep = errors.New("physics: time step must be positive")

	// ErrDuplicateID indicates two bodies sharing an identifier.
	ErrDuplicateID = errors.New("physics: duplicate body identifier")
)

// ErrCollision matches every *CollisionError through errors.Is.
var ErrCollision = errors.New("physics: bodies collided")

// ConstructionError reports an invalid body or simulation parameter.
// Body is empty for simulation-level parameters such as the time step.
type ConstructionError struct {
	Body  string
	Value float64
	Err   error
}

func (e *ConstructionError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%v (got %g)", e.Err, e.Value)
	}
	return fmt.Sprintf("body %q: %v (got %g)", e.Body, e.Err, e.Value)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// CollisionError reports two distinct bodies at zero separation.
type CollisionError struct {
	A, B string
	At   r2.Vec
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("physics: bodies %q and %q collided at (%g, %g)", e.A, e.B, e.At.X, e.At.Y)
}

func (e *CollisionError) Is(target error) bool {
	return target == ErrCollision
}
