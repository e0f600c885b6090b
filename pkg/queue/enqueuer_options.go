package queue

import "time"

// EnqueuerOption configures an Enqueuer
type EnqueuerOption func(*enqueuerOptions)

type enqueuerOptions struct {
	defaultPriority Priority
}

// WithDefaultPriority sets the priority used when a job does not specify one
func WithDefaultPriority(p Priority) EnqueuerOption {
	return func(o *enqueuerOptions) {
		o.defaultPriority = p
	}
}

// EnqueueOption configures a single Enqueue call
type EnqueueOption func(*enqueueOptions)

type enqueueOptions struct {
	targetUserID *string
	priority     Priority
	delay        time.Duration
}

// WithTargetUser sets the subject of a user-scoped job. Empty ids are ignored.
func WithTargetUser(userID string) EnqueueOption {
	return func(o *enqueueOptions) {
		if userID != "" {
			o.targetUserID = &userID
		}
	}
}

// WithPriority sets the job priority
func WithPriority(p Priority) EnqueueOption {
	return func(o *enqueueOptions) {
		o.priority = p
	}
}

// WithDelay postpones the job by d
func WithDelay(d time.Duration) EnqueueOption {
	return func(o *enqueueOptions) {
		if d > 0 {
			o.delay = d
		}
	}
}
