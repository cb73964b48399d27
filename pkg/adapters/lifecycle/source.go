// Package lifecycle bridges page watch events to the lifecycle runtime.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/pagemap/pkg/core"
)

type pageSource struct {
	events     <-chan core.Event
	out        chan lifecycle.Event
	structural bool
}

// Option configures the bridge.
type Option func(*pageSource)

// StructuralOnly drops modify events, forwarding only page creation and removal.
func StructuralOnly() Option {
	return func(s *pageSource) {
		s.structural = true
	}
}

// NewSource creates a lifecycle.Source that emits page events.
// The output channel closes when the input closes or ctx is cancelled.
func NewSource(events <-chan core.Event, opts ...Option) lifecycle.Source {
	s := &pageSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *pageSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *pageSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if s.structural && !e.Structural() {
					continue
				}
				// core.Event implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
