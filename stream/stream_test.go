package stream

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"pfeifer.dev/scurve/profile"
)

type recorder struct {
	states []profile.State
	phases []profile.PhaseKind
	done   []bool
}

func (r *recorder) Publish(st profile.State, phase profile.PhaseKind, done bool) error {
	r.states = append(r.states, st)
	r.phases = append(r.phases, phase)
	r.done = append(r.done, done)
	return nil
}

func shortProfile(t *testing.T) profile.Profile {
	t.Helper()
	p, err := profile.Plan(
		profile.Request{EndPosition: 0.01},
		profile.Limits{MaxVelocity: 1, MaxAcceleration: 10, MaxJerk: 1000},
	)
	require.NoError(t, err)
	require.Less(t, p.Duration(), 0.2)
	return p
}

func TestRunPublishesUntilDone(t *testing.T) {
	defer goleak.VerifyNone(t)
	p := shortProfile(t)
	var r recorder
	require.NoError(t, Run(context.Background(), p, 200, &r))

	require.NotEmpty(t, r.states)
	last := len(r.states) - 1
	assert.True(t, r.done[last])
	for _, d := range r.done[:last] {
		assert.False(t, d)
	}
	assert.Equal(t, p.Final(), r.states[last])
	for i := 1; i < len(r.states); i++ {
		assert.GreaterOrEqual(t, r.states[i].Time, r.states[i-1].Time)
		assert.GreaterOrEqual(t, r.phases[i], r.phases[i-1])
	}
}

func TestRunCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)
	p, err := profile.Plan(profile.Request{EndPosition: 100}, profile.Limits{MaxVelocity: 1, MaxAcceleration: 1, MaxJerk: 1})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	var r recorder
	err = Run(ctx, p, 100, &r)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotEmpty(t, r.states)
	assert.False(t, r.done[len(r.done)-1])
}

func TestRunSinkError(t *testing.T) {
	boom := errors.New("boom")
	err := Run(context.Background(), shortProfile(t), 100, SinkFunc(func(profile.State, profile.PhaseKind, bool) error {
		return boom
	}))
	assert.ErrorIs(t, err, boom)
}

func TestRunInvalidRate(t *testing.T) {
	assert.Error(t, Run(context.Background(), shortProfile(t), 0, SinkFunc(func(profile.State, profile.PhaseKind, bool) error {
		return nil
	})))
}

func TestRunDegenerate(t *testing.T) {
	p, err := profile.Plan(profile.Request{}, profile.Limits{MaxVelocity: 1, MaxAcceleration: 1, MaxJerk: 1})
	require.NoError(t, err)
	var r recorder
	require.NoError(t, Run(context.Background(), p, 10, &r))
	require.Len(t, r.states, 1)
	assert.True(t, r.done[0])
}
