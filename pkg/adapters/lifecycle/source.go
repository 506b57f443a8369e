// Package lifecycle bridges memo set change events into the generic
// lifecycle event model, so hosts already supervising their components with
// the lifecycle runtime can consume gateway watch events like any other
// source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/marginalia/pkg/core"
)

type memoSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource wraps a gateway watch channel as a lifecycle.Source.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &memoSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *memoSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *memoSource) Start(ctx context.Context) error {
	// The bridge goroutine is tracked by lifecycle.Go so shutdown waits for it.
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
