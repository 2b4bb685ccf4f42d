package production

import (
	"context"

	"github.com/comalice/calcx"
)

// ActionSource supplies actions from outside the engine.
type ActionSource interface {
	Actions() <-chan calcx.Action
}

// ChannelActionSource is an ActionSource backed by a Go channel.
type ChannelActionSource struct {
	ch chan calcx.Action
}

// NewChannelActionSource creates a source reading from ch. The channel should
// be buffered if producers must not wait on the engine.
func NewChannelActionSource(ch chan calcx.Action) *ChannelActionSource {
	return &ChannelActionSource{ch: ch}
}

func (s *ChannelActionSource) Actions() <-chan calcx.Action {
	return s.ch
}

// Send queues a, blocking until there is room or ctx is done.
func (s *ChannelActionSource) Send(ctx context.Context, a calcx.Action) error {
	select {
	case s.ch <- a:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drive applies actions from src to e one at a time until the source channel
// closes or ctx is done. Malformed actions stop the loop with their error.
// The engine is only touched from the calling goroutine.
func Drive(ctx context.Context, e *calcx.Engine, src ActionSource) (calcx.Snapshot, error) {
	actions := src.Actions()
	for {
		select {
		case <-ctx.Done():
			return e.Snapshot(), ctx.Err()
		case a, ok := <-actions:
			if !ok {
				return e.Snapshot(), nil
			}
			if _, err := e.Dispatch(a); err != nil {
				return e.Snapshot(), err
			}
		}
	}
}
