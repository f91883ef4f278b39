package cereal

import (
	"testing"

	"capnproto.org/go/capnp/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pfeifer.dev/scurve/profile"
)

func TestEncodeDecodeSample(t *testing.T) {
	st := profile.State{Time: 1.25, Position: -3.5, Velocity: 2, Acceleration: -0.125, Jerk: 20}
	data, err := EncodeSample(st, profile.DecelConst, true)
	require.NoError(t, err)

	sample, err := DecodeSample(data)
	require.NoError(t, err)
	assert.Equal(t, st, sample.State())
	assert.Equal(t, profile.DecelConst, sample.Phase())
	assert.True(t, sample.Done())
	assert.NotZero(t, sample.LogMonoTime())
}

func TestSampleFieldsIndependent(t *testing.T) {
	_, seg, err := capnp.NewMessage(capnp.SingleSegment(nil))
	require.NoError(t, err)
	sample, err := NewSample(seg)
	require.NoError(t, err)

	assert.False(t, sample.Done())
	assert.Equal(t, profile.AccelUp, sample.Phase())

	sample.SetPhase(profile.DecelDown)
	sample.SetDone(true)
	sample.SetLogMonoTime(1<<63 + 7)
	sample.SetJerk(-1)

	assert.Equal(t, profile.DecelDown, sample.Phase())
	assert.True(t, sample.Done())
	assert.Equal(t, uint64(1<<63+7), sample.LogMonoTime())
	assert.Equal(t, -1.0, sample.Jerk())
	assert.Equal(t, 0.0, sample.Acceleration())

	sample.SetDone(false)
	assert.False(t, sample.Done())
	assert.Equal(t, profile.DecelDown, sample.Phase())
}

func TestDecodeGarbage(t *testing.T) {
	_, err := DecodeSample([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestGetTimeMonotonic(t *testing.T) {
	a := GetTime()
	b := GetTime()
	assert.NotZero(t, a)
	assert.GreaterOrEqual(t, b, a)
}
