package profile

import (
	"math"

	"github.com/pkg/errors"

	m "pfeifer.dev/scurve/math"
)

// DefaultEpsilon is the tolerance under which values are treated as zero.
const DefaultEpsilon = 1e-9

const maxBisections = 200

// Planner plans symmetric S-curve profiles. The zero value uses
// DefaultEpsilon.
type Planner struct {
	Epsilon float64
}

// Plan plans req under limits with the default tolerance.
func Plan(req Request, limits Limits) (Profile, error) {
	return Planner{}.Plan(req, limits)
}

func (pl Planner) epsilon() float64 {
	if pl.Epsilon > 0 && m.Finite(pl.Epsilon) {
		return pl.Epsilon
	}
	return DefaultEpsilon
}

// Plan determines the seven constant-jerk phases that move from the start to
// the end state of req without exceeding limits.
//
// The algebra is done for travel in the positive direction. Negative
// displacement is mirrored about zero and the jerk signs flipped back at the
// end.
func (pl Planner) Plan(req Request, limits Limits) (Profile, error) {
	eps := pl.epsilon()
	if err := limits.Validate(); err != nil {
		return Profile{}, err
	}
	if err := req.Validate(); err != nil {
		return Profile{}, err
	}
	vMax := limits.MaxVelocity
	for _, v := range []float64{req.StartVelocity, req.EndVelocity} {
		if math.Abs(v) > vMax+eps {
			return Profile{}, errors.Wrapf(ErrVelocityExceedsLimit, "|%g| > %g", v, vMax)
		}
	}

	dist := m.Snap(req.Displacement(), eps)
	v0 := m.Clamp(m.Snap(req.StartVelocity, eps), -vMax, vMax)
	v1 := m.Clamp(m.Snap(req.EndVelocity, eps), -vMax, vMax)
	if dist == 0 && v0 == 0 && v1 == 0 {
		return newProfile(req, limits, eps, ShapeDegenerate, 0, [PhaseCount]Phase{}), nil
	}

	sigma := direction(dist, v0, v1)
	dist, u0, u1 := sigma*dist, sigma*v0, sigma*v1

	vLow := max(u0, u1, 0)
	if minDist := stageDistance(u0, vLow, u1, limits, eps); dist < minDist-eps {
		return Profile{}, errors.Wrapf(ErrDisplacementTooSmall, "need %g, have %g", minDist, dist)
	}

	shape := ShapeTriangular
	vc := vMax
	cruise := 0.0
	if full := stageDistance(u0, vMax, u1, limits, eps); full <= dist {
		cruise = m.Snap((dist-full)/vMax, eps)
		if cruise > 0 {
			shape = ShapeTrapezoidal
		}
	} else {
		var err error
		vc, err = solveCruiseVelocity(u0, u1, dist, vLow, limits, eps)
		if err != nil {
			return Profile{}, err
		}
	}

	phases := buildPhases(u0, vc, u1, cruise, sigma, limits, eps)
	return newProfile(req, limits, eps, shape, sigma*vc, phases), nil
}

// direction picks the sign of travel. With no displacement it follows the
// boundary velocities.
func direction(dist, v0, v1 float64) float64 {
	switch {
	case dist < 0:
		return -1
	case dist > 0:
		return 1
	case v0+v1 < 0:
		return -1
	}
	return 1
}

// solveCruiseVelocity finds vc in [lo, MaxVelocity] whose stage distance equals
// dist. stageDistance is monotone on that range.
func solveCruiseVelocity(u0, u1, dist, lo float64, l Limits, eps float64) (float64, error) {
	hi := l.MaxVelocity
	aMax, jMax := l.MaxAcceleration, l.MaxJerk

	// Both ramps reach the acceleration limit once vc clears this, and stage
	// distance is then quadratic in vc.
	saturated := max(u0, u1) + aMax*aMax/jMax
	if saturated <= hi && stageDistance(u0, saturated, u1, l, eps) <= dist {
		a := 1 / aMax
		b := aMax / jMax
		c := (u0+u1)*aMax/(2*jMax) - (u0*u0+u1*u1)/(2*aMax) - dist
		_, root, ok := m.QuadraticRoots(a, b, c, eps)
		if !ok {
			return 0, errors.Wrapf(ErrNumericallyUnsolvable, "no real root for %g*v^2 + %g*v + %g", a, b, c)
		}
		if root >= saturated-eps && root <= hi+eps {
			return m.Clamp(root, lo, hi), nil
		}
	}
	return bisectCruiseVelocity(u0, u1, dist, lo, hi, l, eps)
}

func bisectCruiseVelocity(u0, u1, dist, lo, hi float64, l Limits, eps float64) (float64, error) {
	fLo := stageDistance(u0, lo, u1, l, eps) - dist
	fHi := stageDistance(u0, hi, u1, l, eps) - dist
	if !m.Finite(fLo, fHi) {
		return 0, errors.Wrapf(ErrNumericallyUnsolvable, "stage distance not finite on [%g, %g]", lo, hi)
	}
	if fLo >= 0 {
		return lo, nil
	}
	if fHi <= 0 {
		return hi, nil
	}
	for range maxBisections {
		mid := lo + (hi-lo)/2
		if mid <= lo || mid >= hi {
			break
		}
		f := stageDistance(u0, mid, u1, l, eps) - dist
		if math.IsNaN(f) {
			return 0, errors.Wrapf(ErrNumericallyUnsolvable, "stage distance not finite at %g", mid)
		}
		if f <= 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, nil
}

func buildPhases(u0, vc, u1, cruise, sigma float64, l Limits, eps float64) [PhaseCount]Phase {
	accel := newRamp(u0, vc, l, eps)
	decel := newRamp(vc, u1, l, eps)
	j := sigma * l.MaxJerk
	return [PhaseCount]Phase{
		newPhase(AccelUp, accel.direction*j, accel.jerkTime),
		newPhase(AccelConst, 0, accel.constTime),
		newPhase(AccelDown, -accel.direction*j, accel.jerkTime),
		newPhase(Cruise, 0, cruise),
		newPhase(DecelUp, decel.direction*j, decel.jerkTime),
		newPhase(DecelConst, 0, decel.constTime),
		newPhase(DecelDown, -decel.direction*j, decel.jerkTime),
	}
}
