// Package queue claims and executes background jobs one at a time.
//
// The package is organised around a few small components:
//
//   - Dispatcher claims a single job from a Store, looks up its handler in the
//     Registry, runs it inside a failure boundary and records the outcome.
//   - Registry is the closed mapping from JobType to handler. Construction
//     fails unless every supported type has a handler.
//   - Enqueuer validates and stores new pending jobs.
//   - Drainer calls a Dispatcher back to back until the queue is empty.
//   - Outbox parks completions the store failed to persist so a later run
//     can replay them.
//
// Storage is reached only through the Store and EnqueuerRepository
// interfaces. PostgresStorage delegates claim and completion to the
// process_next_background_job and complete_background_job functions;
// MemoryStorage serves tests and local development.
//
// # Usage
//
//	registry, err := queue.NewRegistry(queue.Handlers{
//	    GenerateMatches:  svc.GenerateMatches,
//	    UpdateEmbeddings: svc.UpdateEmbeddings,
//	    CleanupStale:     svc.CleanupStale,
//	    CalculateStats:   svc.CalculateStats,
//	})
//	if err != nil {
//	    return err
//	}
//
//	d, err := queue.NewDispatcher(storage, registry,
//	    queue.WithOutbox(queue.NewMemoryOutbox()),
//	    queue.WithDispatcherLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//
//	result, err := d.Run(ctx) // nil result: nothing to do
//
// # Error Handling
//
// Run returns an error only when the claim fails; it is joined with
// ErrFailedToClaimJob. Handler errors, handler panics and unknown job types
// become a failed Result and are recorded through CompleteJob. A failed
// completion write is logged, joined with ErrFailedToCompleteJob, and never
// changes the Result.
package queue
