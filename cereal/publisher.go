package cereal

import (
	"capnproto.org/go/capnp/v3"
	"github.com/pfeiferj/gomsgq"
	"github.com/pkg/errors"

	"pfeifer.dev/scurve/settings"
)

type MessageCreator[T any] func(*capnp.Segment) (T, error)

type Publisher[T any] struct {
	Pub     gomsgq.MsgqPublisher
	creator MessageCreator[T]
}

func (p *Publisher[T]) Send(msg *capnp.Message) error {
	b, err := msg.Marshal()
	if err != nil {
		return errors.Wrap(err, "could not marshal message")
	}
	p.Pub.Send(b)
	return nil
}

func (p *Publisher[T]) NewMessage() (msg *capnp.Message, obj T, err error) {
	return newMessage(p.creator)
}

func newMessage[T any](creator MessageCreator[T]) (msg *capnp.Message, obj T, err error) {
	arena := capnp.SingleSegment(nil)

	msg, seg, err := capnp.NewMessage(arena)
	if err != nil {
		return nil, obj, errors.Wrap(err, "could not create message")
	}

	obj, err = creator(seg)
	if err != nil {
		return nil, obj, errors.Wrap(err, "could not create message root")
	}

	return msg, obj, nil
}

func NewPublisher[T any](name string, creator MessageCreator[T]) (publisher Publisher[T], err error) {
	msgq := gomsgq.Msgq{}
	err = msgq.Init(name, settings.DEFAULT_SEGMENT_SIZE)
	if err != nil {
		return publisher, errors.Wrapf(err, "could not open queue %s", name)
	}
	pub := gomsgq.MsgqPublisher{}
	pub.Init(msgq)

	publisher.Pub = pub
	publisher.creator = creator
	return publisher, nil
}
