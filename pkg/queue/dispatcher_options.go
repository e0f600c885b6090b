package queue

import (
	"log/slog"
	"time"
)

// DispatcherOption is a functional option for configuring a dispatcher
type DispatcherOption func(*dispatcherOptions)

type dispatcherOptions struct {
	outbox      Outbox
	replayLimit int
	logger      *slog.Logger
	now         func() time.Time
}

// WithOutbox parks completions that failed to persist so later runs can replay them
func WithOutbox(outbox Outbox) DispatcherOption {
	return func(o *dispatcherOptions) {
		o.outbox = outbox
	}
}

// WithReplayLimit caps how many parked completions a single run replays
func WithReplayLimit(n int) DispatcherOption {
	return func(o *dispatcherOptions) {
		if n >= 0 {
			o.replayLimit = n
		}
	}
}

// WithDispatcherLogger sets the logger for the dispatcher
func WithDispatcherLogger(logger *slog.Logger) DispatcherOption {
	return func(o *dispatcherOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) DispatcherOption {
	return func(o *dispatcherOptions) {
		if now != nil {
			o.now = now
		}
	}
}
