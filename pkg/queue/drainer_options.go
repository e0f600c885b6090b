package queue

import (
	"log/slog"
	"time"
)

// DrainerOption configures a Drainer
type DrainerOption func(*drainerOptions)

type drainerOptions struct {
	maxJobs int
	pause   time.Duration
	logger  *slog.Logger
}

// WithMaxJobs caps the jobs processed by one Drain call. Zero means no cap.
func WithMaxJobs(n int) DrainerOption {
	return func(o *drainerOptions) {
		if n >= 0 {
			o.maxJobs = n
		}
	}
}

// WithPause waits d between jobs.
func WithPause(d time.Duration) DrainerOption {
	return func(o *drainerOptions) {
		if d > 0 {
			o.pause = d
		}
	}
}

// WithDrainerLogger sets the logger for the drainer
func WithDrainerLogger(l *slog.Logger) DrainerOption {
	return func(o *drainerOptions) {
		if l != nil {
			o.logger = l
		}
	}
}
