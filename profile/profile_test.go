package profile

import (
	"encoding/json"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// propertyCases cover every shape, both directions, and boundary velocities
// with and against the direction of travel.
var propertyCases = []struct {
	name   string
	req    Request
	limits Limits
}{
	{"trapezoidal", Request{EndPosition: 10}, demoLimits},
	{"triangular", Request{EndPosition: 0.5}, demoLimits},
	{"tiny", Request{EndPosition: 0.05}, demoLimits},
	{"negative", Request{StartPosition: 4, EndPosition: -3}, demoLimits},
	{"moving start", Request{EndPosition: 3, StartVelocity: 1.2}, demoLimits},
	{"moving end", Request{EndPosition: 3, EndVelocity: 1.9}, demoLimits},
	{"opposing start", Request{EndPosition: 5, StartVelocity: -1.5, EndVelocity: 0.5}, demoLimits},
	{"opposing both", Request{EndPosition: 1, StartVelocity: -1, EndVelocity: -1}, demoLimits},
	{"start at limit", Request{EndPosition: 8, StartVelocity: 2}, demoLimits},
	{"jerk bound", Request{EndPosition: 2, EndVelocity: -0.3}, Limits{MaxVelocity: 3, MaxAcceleration: 10, MaxJerk: 5}},
	{"acceleration bound", Request{StartPosition: 100, EndPosition: 20, StartVelocity: -4}, Limits{MaxVelocity: 25, MaxAcceleration: 1.5, MaxJerk: 400}},
}

func TestContinuityAtPhaseBoundaries(t *testing.T) {
	for _, tc := range propertyCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Plan(tc.req, tc.limits)
			require.NoError(t, err)

			for i := 0; i < PhaseCount-1; i++ {
				ph := p.phases[i]
				end := advance(p.starts[i], ph.Jerk, ph.Duration)
				next := p.starts[i+1]
				assert.InDelta(t, end.Time, next.Time, 1e-12)
				assert.InDelta(t, end.Position, next.Position, 1e-6)
				assert.InDelta(t, end.Velocity, next.Velocity, 1e-6)
				assert.InDelta(t, end.Acceleration, next.Acceleration, 1e-6)

				boundary := p.State(next.Time)
				assert.InDelta(t, end.Position, boundary.Position, 1e-6)
				assert.InDelta(t, end.Velocity, boundary.Velocity, 1e-6)
				assert.InDelta(t, end.Acceleration, boundary.Acceleration, 1e-6)
			}
		})
	}
}

func TestBoundaryConditions(t *testing.T) {
	for _, tc := range propertyCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Plan(tc.req, tc.limits)
			require.NoError(t, err)
			assertReachesEnd(t, p, tc.req)
			assert.Equal(t, 0.0, p.State(0).Acceleration)
		})
	}
}

func TestLimitsRespected(t *testing.T) {
	const eps = 1e-9
	for _, tc := range propertyCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Plan(tc.req, tc.limits)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, p.Duration(), 0.0)
			total := 0.0
			for _, ph := range p.Phases() {
				assert.GreaterOrEqual(t, ph.Duration, 0.0)
				assert.LessOrEqual(t, math.Abs(ph.Jerk), tc.limits.MaxJerk)
				total += ph.Duration
			}
			assert.InDelta(t, total, p.Duration(), 1e-12)
			if p.Shape() == ShapeTriangular {
				assert.Zero(t, p.CruiseDuration())
			}

			for _, s := range mustSamples(t, p, 500) {
				assert.LessOrEqual(t, math.Abs(s.Velocity), tc.limits.MaxVelocity+eps)
				assert.LessOrEqual(t, math.Abs(s.Acceleration), tc.limits.MaxAcceleration+eps)
			}
		})
	}
}

func TestStateClamps(t *testing.T) {
	req := Request{StartPosition: 1, EndPosition: 4, StartVelocity: 0.5}
	p, err := Plan(req, demoLimits)
	require.NoError(t, err)

	before := p.State(-0.25)
	assert.Equal(t, p.Initial(), before)
	assert.Equal(t, 1.0, before.Position)
	assert.Equal(t, 0.5, before.Velocity)
	assert.Equal(t, 0.0, before.Acceleration)
	assert.Equal(t, p.Initial(), p.State(math.NaN()))

	after := p.State(p.Duration() + 3)
	assert.Equal(t, p.Final(), after)
	assert.Equal(t, p.Final(), p.State(math.Inf(1)))
	assert.InDelta(t, 4.0, after.Position, 1e-9)
	assert.Equal(t, p.Duration(), after.Time)
}

func TestAccessorsMatchState(t *testing.T) {
	p, err := Plan(Request{EndPosition: 10}, demoLimits)
	require.NoError(t, err)

	for _, tm := range []float64{0.1, 0.35, 2, 5.6} {
		s := Sample(p, tm)
		assert.Equal(t, s, p.State(tm))
		assert.Equal(t, s.Position, p.Position(tm))
		assert.Equal(t, s.Velocity, p.Velocity(tm))
		assert.Equal(t, s.Acceleration, p.Acceleration(tm))
		assert.Equal(t, s.Jerk, p.Jerk(tm))
		assert.Equal(t, tm, s.Time)
	}
	assert.Equal(t, 20.0, p.Jerk(0.1))
	assert.Equal(t, 0.0, p.Jerk(0.35))
	assert.Equal(t, -20.0, p.Jerk(0.5))
}

func TestPhaseAt(t *testing.T) {
	p, err := Plan(Request{EndPosition: 10}, demoLimits)
	require.NoError(t, err)

	tests := []struct {
		t    float64
		want PhaseKind
	}{
		{-1, AccelUp},
		{0, AccelUp},
		{0.2, AccelConst},
		{0.6, AccelDown},
		{0.7, Cruise},
		{5.6, DecelDown},
		{5.7, DecelDown},
		{99, DecelDown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PhaseKind(p.PhaseAt(tt.t)), "t=%g", tt.t)
	}

	tri, err := Plan(Request{EndPosition: 0.05}, demoLimits)
	require.NoError(t, err)
	assert.Equal(t, DecelUp, PhaseKind(tri.PhaseAt(tri.Phases()[AccelUp].Duration*2+1e-9)))

	still, err := Plan(Request{}, demoLimits)
	require.NoError(t, err)
	assert.Equal(t, 0, still.PhaseAt(1))
}

func TestSamples(t *testing.T) {
	p, err := Plan(Request{EndPosition: 10}, demoLimits)
	require.NoError(t, err)

	states, err := p.Samples(10)
	require.NoError(t, err)
	require.Len(t, states, 58)
	assert.Equal(t, 0.0, states[0].Time)
	assert.Equal(t, p.Duration(), states[len(states)-1].Time)

	times := make([]float64, len(states))
	for i, s := range states {
		times[i] = s.Time
	}
	assert.True(t, floats.EqualApprox(times, floats.Span(make([]float64, 58), 0, 5.7), 1e-12))

	_, err = p.Samples(0)
	assert.Error(t, err)
	_, err = p.Samples(math.Inf(1))
	assert.Error(t, err)
	_, err = p.Samples(1e9)
	assert.Error(t, err)

	still, err := Plan(Request{StartPosition: 2, EndPosition: 2}, demoLimits)
	require.NoError(t, err)
	states, err = still.Samples(100)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, 2.0, states[0].Position)
}

func TestConcurrentSampling(t *testing.T) {
	p, err := Plan(Request{EndPosition: 10}, demoLimits)
	require.NoError(t, err)
	want := p.State(1.234)

	var wg sync.WaitGroup
	results := make([]State, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = p.State(1.234)
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestProfileJSON(t *testing.T) {
	p, err := Plan(Request{EndPosition: 0.5}, demoLimits)
	require.NoError(t, err)

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded struct {
		Shape  string `json:"shape"`
		Phases []struct {
			Kind     string  `json:"kind"`
			Duration float64 `json:"duration"`
		} `json:"phases"`
		Limits Limits `json:"limits"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "triangular", decoded.Shape)
	require.Len(t, decoded.Phases, PhaseCount)
	assert.Equal(t, "accel-up", decoded.Phases[0].Kind)
	assert.Equal(t, "cruise", decoded.Phases[3].Kind)
	assert.Zero(t, decoded.Phases[3].Duration)
	assert.Equal(t, demoLimits, decoded.Limits)
	assert.Contains(t, p.String(), "triangular profile")
}

func TestNames(t *testing.T) {
	assert.Equal(t, "decel-const", DecelConst.String())
	assert.Equal(t, "unknown", PhaseKind(9).String())
	assert.Equal(t, "trapezoidal", ShapeTrapezoidal.String())
	assert.Equal(t, "unknown", Shape(-1).String())
}
