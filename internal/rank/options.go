package rank

import (
	"errors"
	"fmt"
	"math"
)

// Default ranking parameters.
const (
	DefaultPrecision = 1e-5
	DefaultDamping   = 0.9
)

// ErrInvalidOptions is returned, wrapped, when Options fail validation.
var ErrInvalidOptions = errors.New("invalid rank options")

// Options configures a ranking run.
type Options struct {
	// Precision is the stop threshold for the per-vertex signed difference
	// old-new. Must be positive.
	Precision float64
	// Damping is the weight of inherited score versus the uniform teleport
	// term. Must be within [0, 1].
	Damping float64
	// MaxIterations caps the number of rounds. Zero means unbounded.
	MaxIterations int
}

// DefaultOptions returns the recommended parameters with no iteration cap.
func DefaultOptions() Options {
	return Options{
		Precision: DefaultPrecision,
		Damping:   DefaultDamping,
	}
}

// Validate checks the options and returns an error wrapping
// ErrInvalidOptions when they are unusable.
func (o Options) Validate() error {
	if math.IsNaN(o.Precision) || math.IsInf(o.Precision, 0) || o.Precision <= 0 {
		return fmt.Errorf("%w: precision must be a positive number, got %v", ErrInvalidOptions, o.Precision)
	}
	if math.IsNaN(o.Damping) || o.Damping < 0 || o.Damping > 1 {
		return fmt.Errorf("%w: damping must be within [0, 1], got %v", ErrInvalidOptions, o.Damping)
	}
	if o.MaxIterations < 0 {
		return fmt.Errorf("%w: max iterations must not be negative, got %d", ErrInvalidOptions, o.MaxIterations)
	}
	return nil
}
