package cereal

import (
	"math"

	"capnproto.org/go/capnp/v3"
	"github.com/pfeiferj/gomsgq"
	"github.com/pkg/errors"

	"pfeifer.dev/scurve/settings"
)

type Reader[T any] func(*capnp.Message) (T, error)

type Subscriber[T any] struct {
	Sub    gomsgq.MsgqSubscriber
	reader Reader[T]
}

func (s *Subscriber[T]) Read() (obj T, success bool) {
	data := s.Sub.Read()
	if len(data) == 0 {
		return obj, false
	}
	obj, err := decode(data, s.reader)
	return obj, err == nil
}

func decode[T any](data []byte, reader Reader[T]) (obj T, err error) {
	msg, err := capnp.Unmarshal(data)
	if err != nil {
		return obj, errors.Wrap(err, "could not unmarshal message")
	}

	// allow us to read as much as we want
	msg.ResetReadLimit(math.MaxUint64)

	obj, err = reader(msg)
	if err != nil {
		return obj, errors.Wrap(err, "could not read message root")
	}
	return obj, nil
}

func NewSubscriber[T any](name string, reader Reader[T], conflate bool) (subscriber Subscriber[T], err error) {
	msgq := gomsgq.Msgq{}
	err = msgq.Init(name, settings.DEFAULT_SEGMENT_SIZE)
	if err != nil {
		return subscriber, errors.Wrapf(err, "could not open queue %s", name)
	}
	sub := gomsgq.MsgqSubscriber{}
	sub.Conflate = conflate
	sub.Init(msgq)

	subscriber.Sub = sub
	subscriber.reader = reader
	return subscriber, nil
}
