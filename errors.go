package physics

import "errors"

// Sentinel error kinds. Wrap with fmt.Errorf("...: %w", ErrX) at the
// call site so callers can errors.Is against these.
var (
	// ErrConstructionInvalid is returned when a shape or body cannot be
	// built: fewer than 3 polygon vertices, a colinear/degenerate
	// polygon, or a non-positive radius. Density is not validated:
	// Body.SetDensity accepts any value and returns no error.
	ErrConstructionInvalid = errors.New("physics: invalid construction")

	// ErrStepPrecondition is returned by World.Step when dt <= 0.
	ErrStepPrecondition = errors.New("physics: invalid step precondition")
)
