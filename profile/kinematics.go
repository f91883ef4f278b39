package profile

import (
	"math"

	m "pfeifer.dev/scurve/math"
)

// State is the instantaneous kinematic state of a profile.
type State struct {
	Time         float64 `json:"time"`
	Position     float64 `json:"position"`
	Velocity     float64 `json:"velocity"`
	Acceleration float64 `json:"acceleration"`
	Jerk         float64 `json:"jerk"`
}

func accelerationAfter(t, jerk, a0 float64) float64 {
	return a0 + jerk*t
}

func velocityAfter(t, jerk, a0, v0 float64) float64 {
	return v0 + a0*t + jerk/2*(t*t)
}

func distanceAfter(t, jerk, a0, v0 float64) float64 {
	return v0*t + a0/2*(t*t) + jerk/6*(t*t*t)
}

// advance integrates constant jerk over t starting from s.
func advance(s State, jerk, t float64) State {
	return State{
		Time:         s.Time + t,
		Position:     s.Position + distanceAfter(t, jerk, s.Acceleration, s.Velocity),
		Velocity:     velocityAfter(t, jerk, s.Acceleration, s.Velocity),
		Acceleration: accelerationAfter(t, jerk, s.Acceleration),
		Jerk:         jerk,
	}
}

// ramp is the jerk-up, constant acceleration, jerk-down sequence that changes
// velocity between two values starting and ending at zero acceleration.
type ramp struct {
	direction float64 // sign of the velocity change
	jerkTime  float64 // duration of each of the two jerk segments
	constTime float64
}

func newRamp(from, to float64, l Limits, eps float64) ramp {
	dv := to - from
	mag := math.Abs(dv)
	if mag <= eps {
		return ramp{}
	}
	r := ramp{direction: m.Sign(dv, 0)}
	aMax, jMax := l.MaxAcceleration, l.MaxJerk
	if mag*jMax <= aMax*aMax {
		// peak acceleration sqrt(dv*j) stays under the limit
		r.jerkTime = math.Sqrt(mag / jMax)
		return r
	}
	r.jerkTime = aMax / jMax
	r.constTime = m.Snap(max(0, mag/aMax-r.jerkTime), eps)
	return r
}

func (r ramp) duration() float64 {
	return 2*r.jerkTime + r.constTime
}

// rampDistance is the distance covered while changing velocity. The ramp is
// point symmetric about its midpoint so the mean velocity is (from+to)/2.
func rampDistance(from, to float64, l Limits, eps float64) float64 {
	return (from + to) / 2 * newRamp(from, to, l, eps).duration()
}

// stageDistance is the distance of the acceleration and deceleration stages
// through cruise velocity vc, with no cruise.
func stageDistance(v0, vc, v1 float64, l Limits, eps float64) float64 {
	return rampDistance(v0, vc, l, eps) + rampDistance(vc, v1, l, eps)
}
