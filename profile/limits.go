package profile

import (
	"github.com/pkg/errors"

	m "pfeifer.dev/scurve/math"
)

// Limits bounds the magnitude of velocity, acceleration and jerk. Units are
// the caller's, but must be consistent (e.g. m, m/s, m/s², m/s³).
type Limits struct {
	MaxVelocity     float64 `json:"max_velocity"`
	MaxAcceleration float64 `json:"max_acceleration"`
	MaxJerk         float64 `json:"max_jerk"`
}

func (l Limits) Validate() error {
	if !m.Finite(l.MaxVelocity, l.MaxAcceleration, l.MaxJerk) ||
		l.MaxVelocity <= 0 || l.MaxAcceleration <= 0 || l.MaxJerk <= 0 {
		return errors.Wrapf(ErrInvalidLimits, "velocity=%g acceleration=%g jerk=%g", l.MaxVelocity, l.MaxAcceleration, l.MaxJerk)
	}
	return nil
}

// Request holds the boundary conditions a profile connects. Acceleration is
// zero at both ends.
type Request struct {
	StartPosition float64 `json:"start_position"`
	EndPosition   float64 `json:"end_position"`
	StartVelocity float64 `json:"start_velocity"`
	EndVelocity   float64 `json:"end_velocity"`
}

func (r Request) Displacement() float64 {
	return r.EndPosition - r.StartPosition
}

func (r Request) Validate() error {
	if !m.Finite(r.StartPosition, r.EndPosition, r.StartVelocity, r.EndVelocity) {
		return errors.Wrapf(ErrInvalidRequest, "start=(%g, %g) end=(%g, %g)", r.StartPosition, r.StartVelocity, r.EndPosition, r.EndVelocity)
	}
	return nil
}
