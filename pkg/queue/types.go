package queue

import "time"

// JobType is the tag that selects which handler processes a job.
// The set of supported values is closed; unknown values can still be
// represented so the dispatcher is able to reject them explicitly.
type JobType string

const (
	JobTypeGenerateMatches  JobType = "generate_matches"
	JobTypeUpdateEmbeddings JobType = "update_embeddings"
	JobTypeCleanupStale     JobType = "cleanup_stale"
	JobTypeCalculateStats   JobType = "calculate_stats"
)

// JobTypes lists every supported job type.
func JobTypes() []JobType {
	return []JobType{
		JobTypeGenerateMatches,
		JobTypeUpdateEmbeddings,
		JobTypeCleanupStale,
		JobTypeCalculateStats,
	}
}

// Valid reports whether t is one of the supported job types.
func (t JobType) Valid() bool {
	switch t {
	case JobTypeGenerateMatches, JobTypeUpdateEmbeddings, JobTypeCleanupStale, JobTypeCalculateStats:
		return true
	default:
		return false
	}
}

// RequiresUser reports whether jobs of this type are scoped to a target user.
func (t JobType) RequiresUser() bool {
	switch t {
	case JobTypeGenerateMatches, JobTypeUpdateEmbeddings:
		return true
	default:
		return false
	}
}

func (t JobType) String() string {
	return string(t)
}

// JobStatus is the lifecycle state owned by the store.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Job is a claimed unit of work as seen by the dispatcher.
type Job struct {
	ID           string  `json:"job_id"`
	Type         JobType `json:"job_type"`
	TargetUserID *string `json:"target_user_id"`
}

// Result summarizes the outcome of processing one job.
// Error is nil on success and on handler-reported failures.
type Result struct {
	JobID   string  `json:"job_id"`
	JobType JobType `json:"job_type"`
	Success bool    `json:"success"`
	Error   *string `json:"error"`
}

// Completion is a terminal outcome waiting to be persisted by the store.
type Completion struct {
	JobID     string    `json:"job_id"`
	Success   bool      `json:"success"`
	Error     *string   `json:"error,omitempty"`
	DecidedAt time.Time `json:"decided_at"`
}

// Priority orders pending jobs; higher runs first.
type Priority int16

const (
	PriorityLow     Priority = -10
	PriorityDefault Priority = 0
	PriorityHigh    Priority = 10
)
