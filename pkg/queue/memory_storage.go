package queue

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// StoredJob is a job row as kept by MemoryStorage.
type StoredJob struct {
	Job
	Status      JobStatus
	Priority    Priority
	Attempts    int
	Error       *string
	ScheduledAt time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// MemoryStorage implements Store and EnqueuerRepository for tests and local development.
// The mutex is the claim's mutual-exclusion point: concurrent callers never
// receive the same job.
type MemoryStorage struct {
	mu      sync.Mutex
	jobs    map[string]*StoredJob
	pending []string
	now     func() time.Time
}

// NewMemoryStorage creates a new in-memory storage implementation
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		jobs: make(map[string]*StoredJob),
		now:  time.Now,
	}
}

// CreateJob implements EnqueuerRepository
func (ms *MemoryStorage) CreateJob(_ context.Context, job *StoredJob) error {
	if job == nil {
		return errors.New("job cannot be nil")
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.jobs[job.ID]; exists {
		return fmt.Errorf("job with ID %s already exists", job.ID)
	}

	jobCopy := *job
	if jobCopy.Status == "" {
		jobCopy.Status = JobStatusPending
	}
	if jobCopy.CreatedAt.IsZero() {
		jobCopy.CreatedAt = ms.now()
	}
	if jobCopy.ScheduledAt.IsZero() {
		jobCopy.ScheduledAt = jobCopy.CreatedAt
	}
	ms.jobs[job.ID] = &jobCopy

	if jobCopy.Status == JobStatusPending {
		ms.pending = append(ms.pending, job.ID)
	}

	return nil
}

// ClaimNextJob implements Store.
// Highest priority wins, earliest scheduled time breaks ties.
func (ms *MemoryStorage) ClaimNextJob(_ context.Context) (*Job, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	var best *StoredJob

	for _, id := range ms.pending {
		job := ms.jobs[id]
		if job.ScheduledAt.After(now) {
			continue
		}
		if best == nil ||
			job.Priority > best.Priority ||
			(job.Priority == best.Priority && job.ScheduledAt.Before(best.ScheduledAt)) {
			best = job
		}
	}

	if best == nil {
		return nil, nil
	}

	best.Status = JobStatusProcessing
	best.StartedAt = &now
	best.Attempts++
	ms.pending = slices.DeleteFunc(ms.pending, func(id string) bool {
		return id == best.ID
	})

	claimed := best.Job
	return &claimed, nil
}

// CompleteJob implements Store
func (ms *MemoryStorage) CompleteJob(_ context.Context, jobID string, success bool, errMsg *string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	job, exists := ms.jobs[jobID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	if job.Status != JobStatusProcessing {
		return fmt.Errorf("%w: %s", ErrJobNotProcessing, jobID)
	}

	now := ms.now()
	job.CompletedAt = &now
	job.Error = errMsg
	if success {
		job.Status = JobStatusCompleted
	} else {
		job.Status = JobStatusFailed
	}

	return nil
}

// Get returns a copy of the stored job.
func (ms *MemoryStorage) Get(jobID string) (StoredJob, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	job, exists := ms.jobs[jobID]
	if !exists {
		return StoredJob{}, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}

	return *job, nil
}
