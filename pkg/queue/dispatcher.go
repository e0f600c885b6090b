package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kultapp/jobengine/pkg/logger"
)

// Store is the contract around the external job storage.
type Store interface {
	// ClaimNextJob atomically claims the next pending job.
	// It returns nil and no error when the queue is empty, and must return an
	// error rather than an empty result on storage failures.
	ClaimNextJob(ctx context.Context) (*Job, error)

	// CompleteJob records the terminal outcome of a claimed job.
	CompleteJob(ctx context.Context, jobID string, success bool, errMsg *string) error
}

// Dispatcher claims a single job per run, executes its handler and records
// the outcome. It holds no state between runs.
type Dispatcher struct {
	store       Store
	registry    *Registry
	outbox      Outbox
	replayLimit int
	logger      *slog.Logger
	now         func() time.Time
}

// NewDispatcher creates a dispatcher over the given store and registry.
func NewDispatcher(store Store, registry *Registry, opts ...DispatcherOption) (*Dispatcher, error) {
	if store == nil {
		return nil, ErrRepositoryNil
	}
	if registry == nil {
		return nil, ErrRegistryNil
	}

	options := &dispatcherOptions{
		replayLimit: 10,
		logger:      slog.Default(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(options)
	}

	return &Dispatcher{
		store:       store,
		registry:    registry,
		outbox:      options.outbox,
		replayLimit: options.replayLimit,
		logger:      options.logger,
		now:         options.now,
	}, nil
}

// Run processes at most one job. It returns nil and no error when there was
// nothing to do. The only error it returns is a claim failure; handler errors
// and panics are converted into a failed Result.
func (d *Dispatcher) Run(ctx context.Context) (*Result, error) {
	d.replayCompletions(ctx)

	job, err := d.store.ClaimNextJob(ctx)
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to claim job", logger.Error(err))
		return nil, errors.Join(ErrFailedToClaimJob, err)
	}
	if job == nil {
		d.logger.DebugContext(ctx, "no pending jobs")
		return nil, nil
	}

	// A claimed job must reach its completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	d.logger.InfoContext(ctx, "processing job",
		logger.JobID(job.ID),
		logger.JobType(string(job.Type)),
		logger.UserID(job.TargetUserID))

	start := d.now()
	success, errMsg := d.execute(ctx, *job)
	duration := d.now().Sub(start)

	if success {
		d.logger.InfoContext(ctx, "job completed",
			logger.JobID(job.ID),
			logger.JobType(string(job.Type)),
			logger.Duration(duration))
	} else {
		d.logger.WarnContext(ctx, "job failed",
			logger.JobID(job.ID),
			logger.JobType(string(job.Type)),
			logger.Duration(duration),
			logger.Reason(errMsg))
	}

	d.complete(ctx, Completion{
		JobID:     job.ID,
		Success:   success,
		Error:     errMsg,
		DecidedAt: d.now(),
	})

	return &Result{
		JobID:   job.ID,
		JobType: job.Type,
		Success: success,
		Error:   errMsg,
	}, nil
}

// execute runs the handler for job under a failure boundary.
func (d *Dispatcher) execute(ctx context.Context, job Job) (success bool, errMsg *string) {
	handle, ok := d.registry.Lookup(job.Type)
	if !ok {
		msg := "Unknown job type: " + string(job.Type)
		d.logger.ErrorContext(ctx, "unknown job type",
			logger.JobID(job.ID),
			logger.JobType(string(job.Type)))
		return false, &msg
	}

	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("panic in handler: %v", r)
			d.logger.ErrorContext(ctx, "handler panicked",
				logger.JobID(job.ID),
				logger.JobType(string(job.Type)),
				slog.Any("panic", r))
			success, errMsg = false, &msg
		}
	}()

	ok, err := handle(ctx, job)
	if err != nil {
		msg := err.Error()
		return false, &msg
	}

	return ok, nil
}

// complete persists the outcome. A failed write is logged and, when an
// outbox is configured, parked there for a later run to replay.
func (d *Dispatcher) complete(ctx context.Context, c Completion) {
	err := d.store.CompleteJob(ctx, c.JobID, c.Success, c.Error)
	if err == nil {
		return
	}
	err = errors.Join(ErrFailedToCompleteJob, err)

	d.logger.ErrorContext(ctx, "failed to record job completion",
		logger.JobID(c.JobID),
		slog.Bool("success", c.Success),
		logger.Error(err))

	// The store rejected the job itself; replaying the write cannot succeed.
	if d.outbox == nil || isStaleCompletion(err) {
		return
	}
	if err := d.outbox.Push(ctx, c); err != nil {
		d.logger.ErrorContext(ctx, "failed to park completion in outbox",
			logger.JobID(c.JobID),
			logger.Error(err))
	}
}

// replayCompletions retries completions that previous runs failed to persist.
// It stops at the first failure so a store outage does not spin through the
// whole outbox. Entries the store rejects as stale are dropped.
func (d *Dispatcher) replayCompletions(ctx context.Context) {
	if d.outbox == nil {
		return
	}

	for range d.replayLimit {
		c, err := d.outbox.Pop(ctx)
		if errors.Is(err, ErrOutboxEntryInvalid) {
			d.logger.WarnContext(ctx, "skipped unreadable outbox entry", logger.Error(err))
			continue
		}
		if err != nil {
			if !errors.Is(err, ErrOutboxEmpty) {
				d.logger.ErrorContext(ctx, "failed to read completion outbox", logger.Error(err))
			}
			return
		}

		err = d.store.CompleteJob(ctx, c.JobID, c.Success, c.Error)
		if isStaleCompletion(err) {
			d.logger.WarnContext(ctx, "dropped stale completion",
				logger.JobID(c.JobID),
				logger.Error(err))
			continue
		}
		if err != nil {
			d.logger.WarnContext(ctx, "completion replay failed",
				logger.JobID(c.JobID),
				logger.Error(err))
			if err := d.outbox.Requeue(context.WithoutCancel(ctx), *c); err != nil {
				d.logger.ErrorContext(ctx, "failed to return completion to outbox",
					logger.JobID(c.JobID),
					logger.Error(err))
			}
			return
		}

		d.logger.InfoContext(ctx, "replayed job completion",
			logger.JobID(c.JobID),
			slog.Bool("success", c.Success))
	}
}

// isStaleCompletion reports whether the store refused a completion because
// the job is unknown or no longer processing.
func isStaleCompletion(err error) bool {
	return errors.Is(err, ErrJobNotFound) || errors.Is(err, ErrJobNotProcessing)
}
