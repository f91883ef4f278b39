// Package profile plans jerk-limited one dimensional motion and samples the
// result.
//
// A Profile is seven constant-jerk phases: jerk up, constant acceleration and
// jerk down to reach the cruise velocity, a cruise, and the mirror image down
// to the end velocity. Any phase may have zero duration. Profiles are
// immutable once planned and safe to sample from many goroutines.
package profile

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// maxSamples caps the size of Samples output.
const maxSamples = 1 << 22

type Profile struct {
	request Request
	limits  Limits
	epsilon float64

	shape        Shape
	peakVelocity float64
	duration     float64

	phases [PhaseCount]Phase

	// starts holds the state at the beginning of each phase, integrated once
	// when the profile is built.
	starts  [PhaseCount]State
	initial State
	final   State
}

func newProfile(req Request, limits Limits, eps float64, shape Shape, peak float64, phases [PhaseCount]Phase) Profile {
	p := Profile{
		request:      req,
		limits:       limits,
		epsilon:      eps,
		shape:        shape,
		peakVelocity: peak,
		phases:       phases,
	}
	s := State{Position: req.StartPosition, Velocity: req.StartVelocity}
	p.initial = s
	for i, ph := range phases {
		s.Jerk = ph.Jerk
		p.starts[i] = s
		s = advance(s, ph.Jerk, ph.Duration)
	}
	s.Jerk = 0
	p.final = s
	p.duration = s.Time
	if p.duration == 0 {
		p.shape = ShapeDegenerate
	}
	return p
}

// State returns the kinematic state at time t. Times before zero return the
// initial state and times past the end return the final state.
func (p Profile) State(t float64) State {
	if !(t >= 0) {
		return p.initial
	}
	if t >= p.duration {
		return p.final
	}
	for i := range p.phases {
		start := p.starts[i]
		if t < start.Time+p.phases[i].Duration {
			return advance(start, p.phases[i].Jerk, t-start.Time)
		}
	}
	return p.final
}

// Sample is State as a free function for callers that hold a profile value.
func Sample(p Profile, t float64) State {
	return p.State(t)
}

func (p Profile) Position(t float64) float64 {
	return p.State(t).Position
}

func (p Profile) Velocity(t float64) float64 {
	return p.State(t).Velocity
}

func (p Profile) Acceleration(t float64) float64 {
	return p.State(t).Acceleration
}

func (p Profile) Jerk(t float64) float64 {
	return p.State(t).Jerk
}

// Duration is the total duration of all phases.
func (p Profile) Duration() float64 { return p.duration }

func (p Profile) Phases() [PhaseCount]Phase { return p.phases }

func (p Profile) Shape() Shape { return p.shape }

// PeakVelocity is the signed cruise velocity, or zero for a degenerate
// profile.
func (p Profile) PeakVelocity() float64 { return p.peakVelocity }

func (p Profile) CruiseDuration() float64 { return p.phases[Cruise].Duration }

func (p Profile) Limits() Limits { return p.limits }

func (p Profile) Request() Request { return p.request }

func (p Profile) Initial() State { return p.initial }

func (p Profile) Final() State { return p.final }

// PhaseAt returns the index of the phase active at t. Times outside the
// profile map to the first or last phase with non-zero duration.
func (p Profile) PhaseAt(t float64) int {
	first, last := -1, 0
	for i, ph := range p.phases {
		if ph.Duration > 0 {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return 0
	}
	if t >= p.duration {
		return last
	}
	for i, ph := range p.phases {
		if ph.Duration > 0 && t < p.starts[i].Time+ph.Duration {
			return i
		}
	}
	return last
}

// WithLimits plans the same request under new limits. The receiver is left
// untouched.
func (p Profile) WithLimits(limits Limits) (Profile, error) {
	return Planner{Epsilon: p.epsilon}.Plan(p.request, limits)
}

// Samples evaluates the profile on an evenly spaced grid from zero to the end
// of the profile, inclusive, at no less than rate samples per second.
func (p Profile) Samples(rate float64) ([]State, error) {
	if !(rate > 0) || math.IsInf(rate, 0) {
		return nil, errors.Errorf("sample rate must be positive, got %g", rate)
	}
	if p.duration == 0 {
		return []State{p.State(0)}, nil
	}
	n := math.Ceil(p.duration*rate) + 1
	if n > maxSamples {
		return nil, errors.Errorf("%g samples exceeds the limit of %d", n, maxSamples)
	}
	times := floats.Span(make([]float64, int(n)), 0, p.duration)
	states := make([]State, len(times))
	for i, t := range times {
		states[i] = p.State(t)
	}
	return states, nil
}

func (p Profile) String() string {
	return fmt.Sprintf("%s profile: duration=%.6g peak_velocity=%.6g cruise=%.6g",
		p.shape, p.duration, p.peakVelocity, p.CruiseDuration())
}

type profileJSON struct {
	Shape        Shape             `json:"shape"`
	Duration     float64           `json:"duration"`
	PeakVelocity float64           `json:"peak_velocity"`
	Request      Request           `json:"request"`
	Limits       Limits            `json:"limits"`
	Phases       [PhaseCount]Phase `json:"phases"`
	Starts       [PhaseCount]State `json:"phase_starts"`
	Final        State             `json:"final"`
}

func (p Profile) MarshalJSON() ([]byte, error) {
	return json.Marshal(profileJSON{
		Shape:        p.shape,
		Duration:     p.duration,
		PeakVelocity: p.peakVelocity,
		Request:      p.request,
		Limits:       p.limits,
		Phases:       p.phases,
		Starts:       p.starts,
		Final:        p.final,
	})
}
