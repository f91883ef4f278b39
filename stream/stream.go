// Package stream plays a profile back in wall-clock time.
package stream

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"pfeifer.dev/scurve/profile"
	"pfeifer.dev/scurve/utils"
)

// Sink receives each sampled state. Done is set on the final sample.
type Sink interface {
	Publish(st profile.State, phase profile.PhaseKind, done bool) error
}

type SinkFunc func(st profile.State, phase profile.PhaseKind, done bool) error

func (f SinkFunc) Publish(st profile.State, phase profile.PhaseKind, done bool) error {
	return f(st, phase, done)
}

// Run samples p at rate Hz from the moment it is called and hands each state
// to sink. It returns after publishing the final state, or with the context
// error if ctx ends first.
func Run(ctx context.Context, p profile.Profile, rate float64, sink Sink) error {
	if !(rate > 0) {
		return errors.Errorf("stream rate must be positive, got %g", rate)
	}
	period := time.Duration(float64(time.Second) / rate)
	if period <= 0 {
		period = time.Nanosecond
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	tracker := utils.UpdateTracker{}
	tracker.Init(max(1, int(rate)))

	start := time.Now()
	for {
		t := time.Since(start).Seconds()
		done := t >= p.Duration()
		st := p.State(t)
		if done {
			st = p.Final()
		}
		if err := sink.Publish(st, profile.PhaseKind(p.PhaseAt(t)), done); err != nil {
			return errors.Wrap(err, "could not publish sample")
		}
		tracker.Update()
		slog.Debug("published sample", "time", st.Time, "phase", profile.PhaseKind(p.PhaseAt(t)), "rate", tracker.Rate())
		if done {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
