// Package logger builds the engine's *slog.Logger.
//
// New applies Option functions (format, level, static attributes,
// per-environment defaults) and wraps the resulting handler in a
// LogHandlerDecorator that runs ContextExtractor callbacks for every record.
// The trigger endpoint registers an extractor for the chi request id, so
// everything logged while a job runs carries the id of the call that
// started it.
//
// Attribute helpers (JobID, JobType, UserID, Reason, Error, ...) keep key
// names consistent across packages. Helpers taking optional values return an
// empty slog.Attr for nil input, which slog drops:
//
//	log.InfoContext(ctx, "processing job",
//	    logger.JobID(job.ID),
//	    logger.UserID(job.TargetUserID), // omitted for global jobs
//	)
package logger
