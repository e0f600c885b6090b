package queue

import "errors"

var (
	// ErrRepositoryNil is returned when a nil repository is provided
	ErrRepositoryNil = errors.New("repository cannot be nil")

	// ErrRunnerNil is returned when a drainer is built without a runner
	ErrRunnerNil = errors.New("runner cannot be nil")

	// ErrRegistryNil is returned when the dispatcher is built without a registry
	ErrRegistryNil = errors.New("handler registry cannot be nil")

	// ErrHandlerNotRegistered is returned when a supported job type has no handler
	ErrHandlerNotRegistered = errors.New("no handler registered for job type")

	// ErrUnknownJobType is returned when enqueueing a job type outside the supported set
	ErrUnknownJobType = errors.New("unknown job type")

	// ErrTargetUserRequired is returned when a user-scoped job is enqueued without a user
	ErrTargetUserRequired = errors.New("job type requires a target user")

	// ErrFailedToClaimJob is returned when the store fails to hand out the next job
	ErrFailedToClaimJob = errors.New("failed to claim next job from storage")

	// ErrFailedToCompleteJob is returned when the store fails to record a job outcome
	ErrFailedToCompleteJob = errors.New("failed to record job completion")

	// ErrJobCreate is returned when job creation in storage fails
	ErrJobCreate = errors.New("failed to create job in storage")

	// ErrJobNotFound is returned by storages when a job id is unknown
	ErrJobNotFound = errors.New("job not found")

	// ErrJobNotProcessing is returned when completing a job that was not claimed
	ErrJobNotProcessing = errors.New("job is not in processing state")

	// ErrOutboxEmpty is returned by Outbox.Pop when nothing is pending
	ErrOutboxEmpty = errors.New("completion outbox is empty")

	// ErrOutboxEntryInvalid is returned by Outbox.Pop when an entry cannot be decoded.
	// The entry has been removed from the outbox and moved to its dead-letter list.
	ErrOutboxEntryInvalid = errors.New("invalid completion outbox entry")
)
