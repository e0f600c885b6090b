package queue

import (
	"context"
	"fmt"
)

type (
	// UserHandlerFunc processes a user-scoped job. userID is nil when the job
	// carries no target user. A false return is a recoverable failure that is
	// recorded without an error message; a non-nil error is recorded verbatim.
	UserHandlerFunc func(ctx context.Context, userID *string) (bool, error)

	// GlobalHandlerFunc processes a job that is not scoped to a user.
	GlobalHandlerFunc func(ctx context.Context) (bool, error)

	// HandlerFunc is the uniform shape the dispatcher executes.
	HandlerFunc func(ctx context.Context, job Job) (bool, error)
)

func (h UserHandlerFunc) handle(ctx context.Context, job Job) (bool, error) {
	return h(ctx, job.TargetUserID)
}

func (h GlobalHandlerFunc) handle(ctx context.Context, _ Job) (bool, error) {
	return h(ctx)
}

// Handlers holds exactly one handler per supported job type.
type Handlers struct {
	GenerateMatches  UserHandlerFunc
	UpdateEmbeddings UserHandlerFunc
	CleanupStale     GlobalHandlerFunc
	CalculateStats   GlobalHandlerFunc
}

// Registry maps job types to handlers. It is closed: lookups go through an
// exhaustive switch over JobType, never through a map keyed by raw strings.
type Registry struct {
	handlers Handlers
}

// NewRegistry validates that every supported job type has a handler.
func NewRegistry(h Handlers) (*Registry, error) {
	missing := make([]JobType, 0, 4)
	if h.GenerateMatches == nil {
		missing = append(missing, JobTypeGenerateMatches)
	}
	if h.UpdateEmbeddings == nil {
		missing = append(missing, JobTypeUpdateEmbeddings)
	}
	if h.CleanupStale == nil {
		missing = append(missing, JobTypeCleanupStale)
	}
	if h.CalculateStats == nil {
		missing = append(missing, JobTypeCalculateStats)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrHandlerNotRegistered, missing)
	}

	return &Registry{handlers: h}, nil
}

// Lookup returns the handler for t, or false if t is not a supported type.
func (r *Registry) Lookup(t JobType) (HandlerFunc, bool) {
	switch t {
	case JobTypeGenerateMatches:
		return r.handlers.GenerateMatches.handle, true
	case JobTypeUpdateEmbeddings:
		return r.handlers.UpdateEmbeddings.handle, true
	case JobTypeCleanupStale:
		return r.handlers.CleanupStale.handle, true
	case JobTypeCalculateStats:
		return r.handlers.CalculateStats.handle, true
	default:
		return nil, false
	}
}
