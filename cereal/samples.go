package cereal

import (
	"pfeifer.dev/scurve/profile"
)

// EncodeSample builds and marshals a single Sample message.
func EncodeSample(st profile.State, phase profile.PhaseKind, done bool) ([]byte, error) {
	msg, sample, err := newMessage(SampleCreator)
	if err != nil {
		return nil, err
	}
	fillSample(sample, st, phase, done)
	return msg.Marshal()
}

func DecodeSample(data []byte) (Sample, error) {
	return decode(data, SampleReader)
}

func fillSample(sample Sample, st profile.State, phase profile.PhaseKind, done bool) {
	sample.SetLogMonoTime(GetTime())
	sample.SetState(st)
	sample.SetPhase(phase)
	sample.SetDone(done)
}

// SamplePublisher publishes profile states on a queue.
type SamplePublisher struct {
	Publisher[Sample]
}

func NewSamplePublisher(name string) (*SamplePublisher, error) {
	pub, err := NewPublisher(name, SampleCreator)
	if err != nil {
		return nil, err
	}
	return &SamplePublisher{Publisher: pub}, nil
}

func (p *SamplePublisher) Publish(st profile.State, phase profile.PhaseKind, done bool) error {
	msg, sample, err := p.NewMessage()
	if err != nil {
		return err
	}
	fillSample(sample, st, phase, done)
	return p.Send(msg)
}

func NewSampleSubscriber(name string, conflate bool) (Subscriber[Sample], error) {
	return NewSubscriber(name, SampleReader, conflate)
}
