package profile

import "github.com/pkg/errors"

// Planning failures. Plan wraps these with the offending values, match them
// with errors.Is.
var (
	ErrInvalidLimits         = errors.New("kinematic limits must be positive and finite")
	ErrInvalidRequest        = errors.New("motion request must be finite")
	ErrVelocityExceedsLimit  = errors.New("boundary velocity exceeds velocity limit")
	ErrDisplacementTooSmall  = errors.New("displacement too small to connect boundary velocities")
	ErrNumericallyUnsolvable = errors.New("cruise velocity could not be solved numerically")
)
