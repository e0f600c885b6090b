package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EnqueuerRepository defines the interface for job creation
type EnqueuerRepository interface {
	CreateJob(ctx context.Context, job *StoredJob) error
}

// Enqueuer validates and stores new jobs
type Enqueuer struct {
	repo            EnqueuerRepository
	defaultPriority Priority
	now             func() time.Time
}

// NewEnqueuer creates a new Enqueuer
func NewEnqueuer(repo EnqueuerRepository, opts ...EnqueuerOption) (*Enqueuer, error) {
	if repo == nil {
		return nil, ErrRepositoryNil
	}

	options := &enqueuerOptions{
		defaultPriority: PriorityDefault,
	}
	for _, opt := range opts {
		opt(options)
	}

	return &Enqueuer{
		repo:            repo,
		defaultPriority: options.defaultPriority,
		now:             time.Now,
	}, nil
}

// Enqueue adds a new pending job and returns its id.
func (e *Enqueuer) Enqueue(ctx context.Context, jobType JobType, opts ...EnqueueOption) (string, error) {
	if !jobType.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownJobType, jobType)
	}

	options := &enqueueOptions{
		priority: e.defaultPriority,
	}
	for _, opt := range opts {
		opt(options)
	}

	if jobType.RequiresUser() && options.targetUserID == nil {
		return "", fmt.Errorf("%w: %s", ErrTargetUserRequired, jobType)
	}
	if !jobType.RequiresUser() {
		options.targetUserID = nil
	}

	now := e.now()
	job := &StoredJob{
		Job: Job{
			ID:           uuid.NewString(),
			Type:         jobType,
			TargetUserID: options.targetUserID,
		},
		Status:      JobStatusPending,
		Priority:    options.priority,
		ScheduledAt: now.Add(options.delay),
		CreatedAt:   now,
	}

	if err := e.repo.CreateJob(ctx, job); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrJobCreate, jobType, err)
	}

	return job.ID, nil
}
