package calcx

import "github.com/rs/zerolog"

// Option applies configuration to an Engine.
type Option func(*Engine)

// WithLogger routes transition logging to l. The default discards it.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithObserver registers o to be called after every dispatched action.
// Observers run synchronously in registration order.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Action, Snapshot)

func (f ObserverFunc) Observe(a Action, s Snapshot) {
	f(a, s)
}
