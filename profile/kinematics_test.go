package profile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRamp(t *testing.T) {
	tests := []struct {
		name      string
		from, to  float64
		direction float64
		jerkTime  float64
		constTime float64
	}{
		{"no change", 1, 1, 0, 0, 0},
		{"within epsilon", 1, 1 + 1e-12, 0, 0, 0},
		{"jerk limited", 0, 0.45, 1, 0.15, 0},
		{"exactly saturated", 0, 0.8, 1, 0.2, 0},
		{"acceleration limited", 0, 2, 1, 0.2, 0.3},
		{"slowing down", 2, -1, -1, 0.2, 0.55},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRamp(tt.from, tt.to, demoLimits, DefaultEpsilon)
			assert.Equal(t, tt.direction, r.direction)
			assert.InDelta(t, tt.jerkTime, r.jerkTime, 1e-12)
			assert.InDelta(t, tt.constTime, r.constTime, 1e-12)

			s := State{Velocity: tt.from}
			j := r.direction * demoLimits.MaxJerk
			s = advance(s, j, r.jerkTime)
			assert.LessOrEqual(t, math.Abs(s.Acceleration), demoLimits.MaxAcceleration+1e-12)
			s = advance(s, 0, r.constTime)
			s = advance(s, -j, r.jerkTime)
			if r.direction != 0 {
				assert.InDelta(t, tt.to, s.Velocity, 1e-12)
			}
			assert.InDelta(t, 0, s.Acceleration, 1e-12)
			assert.InDelta(t, rampDistance(tt.from, tt.to, demoLimits, DefaultEpsilon), s.Position, 1e-12)
		})
	}
}

func TestAdvance(t *testing.T) {
	s := advance(State{Time: 1, Position: 2, Velocity: 3, Acceleration: 4}, 6, 2)
	assert.Equal(t, State{Time: 3, Position: 2 + 6 + 8 + 8, Velocity: 3 + 8 + 12, Acceleration: 16, Jerk: 6}, s)

	same := advance(State{Position: 5, Velocity: -1}, 10, 0)
	assert.Equal(t, 5.0, same.Position)
	assert.Equal(t, -1.0, same.Velocity)
	assert.Equal(t, 0.0, same.Acceleration)
}

func TestStageDistanceMonotone(t *testing.T) {
	prev := math.Inf(-1)
	for vc := 0.0; vc <= 2; vc += 0.01 {
		d := stageDistance(-1.5, vc, 0.2, demoLimits, DefaultEpsilon)
		assert.GreaterOrEqual(t, d, prev-1e-12, "vc=%g", vc)
		prev = d
	}
}
