package cereal

import (
	"math"

	"capnproto.org/go/capnp/v3"

	"pfeifer.dev/scurve/profile"
)

// Sample mirrors the Sample struct in sample.capnp. Field offsets follow the
// schema layout: five float64 words, the mono time word, then phase and done
// packed into the last word.
type Sample capnp.Struct

var sampleSize = capnp.ObjectSize{DataSize: 56, PointerCount: 0}

const (
	sampleTimeOffset         = 0
	samplePositionOffset     = 8
	sampleVelocityOffset     = 16
	sampleAccelerationOffset = 24
	sampleJerkOffset         = 32
	sampleMonoTimeOffset     = 40
	samplePhaseOffset        = 48
	sampleDoneBit            = 49 * 8
)

func NewSample(s *capnp.Segment) (Sample, error) {
	st, err := capnp.NewStruct(s, sampleSize)
	return Sample(st), err
}

func NewRootSample(s *capnp.Segment) (Sample, error) {
	st, err := capnp.NewRootStruct(s, sampleSize)
	return Sample(st), err
}

func ReadRootSample(msg *capnp.Message) (Sample, error) {
	root, err := msg.Root()
	return Sample(root.Struct()), err
}

func (s Sample) float(off capnp.DataOffset) float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(off))
}

func (s Sample) setFloat(off capnp.DataOffset, v float64) {
	capnp.Struct(s).SetUint64(off, math.Float64bits(v))
}

func (s Sample) Time() float64             { return s.float(sampleTimeOffset) }
func (s Sample) SetTime(v float64)         { s.setFloat(sampleTimeOffset, v) }
func (s Sample) Position() float64         { return s.float(samplePositionOffset) }
func (s Sample) SetPosition(v float64)     { s.setFloat(samplePositionOffset, v) }
func (s Sample) Velocity() float64         { return s.float(sampleVelocityOffset) }
func (s Sample) SetVelocity(v float64)     { s.setFloat(sampleVelocityOffset, v) }
func (s Sample) Acceleration() float64     { return s.float(sampleAccelerationOffset) }
func (s Sample) SetAcceleration(v float64) { s.setFloat(sampleAccelerationOffset, v) }
func (s Sample) Jerk() float64             { return s.float(sampleJerkOffset) }
func (s Sample) SetJerk(v float64)         { s.setFloat(sampleJerkOffset, v) }

func (s Sample) LogMonoTime() uint64 {
	return capnp.Struct(s).Uint64(sampleMonoTimeOffset)
}

func (s Sample) SetLogMonoTime(v uint64) {
	capnp.Struct(s).SetUint64(sampleMonoTimeOffset, v)
}

func (s Sample) Phase() profile.PhaseKind {
	return profile.PhaseKind(capnp.Struct(s).Uint8(samplePhaseOffset))
}

func (s Sample) SetPhase(v profile.PhaseKind) {
	capnp.Struct(s).SetUint8(samplePhaseOffset, uint8(v))
}

func (s Sample) Done() bool {
	return capnp.Struct(s).Bit(sampleDoneBit)
}

func (s Sample) SetDone(v bool) {
	capnp.Struct(s).SetBit(sampleDoneBit, v)
}

func (s Sample) SetState(st profile.State) {
	s.SetTime(st.Time)
	s.SetPosition(st.Position)
	s.SetVelocity(st.Velocity)
	s.SetAcceleration(st.Acceleration)
	s.SetJerk(st.Jerk)
}

func (s Sample) State() profile.State {
	return profile.State{
		Time:         s.Time(),
		Position:     s.Position(),
		Velocity:     s.Velocity(),
		Acceleration: s.Acceleration(),
		Jerk:         s.Jerk(),
	}
}

func SampleCreator(seg *capnp.Segment) (Sample, error) {
	return NewRootSample(seg)
}

func SampleReader(msg *capnp.Message) (Sample, error) {
	return ReadRootSample(msg)
}
