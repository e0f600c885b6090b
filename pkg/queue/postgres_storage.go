package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const (
	claimNextJobQuery = `SELECT job_id::text, job_type, target_user_id::text FROM process_next_background_job()`
	completeJobQuery  = `SELECT complete_background_job($1::uuid, $2, $3)`
	createJobQuery    = `INSERT INTO background_jobs
	(id, job_type, target_user_id, status, priority, scheduled_at, created_at)
	VALUES ($1::uuid, $2, $3::uuid, $4, $5, $6, $7)`
)

// PostgresStorage adapts the background_jobs table and its stored procedures
// to Store and EnqueuerRepository. Claim exclusivity comes from
// process_next_background_job, which locks with FOR UPDATE SKIP LOCKED.
type PostgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage wraps db. Use stdlib.OpenDBFromPool to share a pgx pool.
func NewPostgresStorage(db *sql.DB) (*PostgresStorage, error) {
	if db == nil {
		return nil, ErrRepositoryNil
	}
	return &PostgresStorage{db: db}, nil
}

// ClaimNextJob implements Store
func (s *PostgresStorage) ClaimNextJob(ctx context.Context) (*Job, error) {
	var (
		id, jobType string
		userID      sql.NullString
	)

	err := s.db.QueryRowContext(ctx, claimNextJobQuery).Scan(&id, &jobType, &userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("process_next_background_job: %w", err)
	}

	job := &Job{
		ID:   id,
		Type: JobType(jobType),
	}
	if userID.Valid && userID.String != "" {
		job.TargetUserID = &userID.String
	}

	return job, nil
}

// CompleteJob implements Store. A job that is unknown or not processing is
// reported as ErrJobNotProcessing, matching MemoryStorage.
func (s *PostgresStorage) CompleteJob(ctx context.Context, jobID string, success bool, errMsg *string) error {
	var reason sql.NullString
	if errMsg != nil {
		reason = sql.NullString{String: *errMsg, Valid: true}
	}

	var updated bool
	if err := s.db.QueryRowContext(ctx, completeJobQuery, jobID, success, reason).Scan(&updated); err != nil {
		return fmt.Errorf("complete_background_job %s: %w", jobID, err)
	}
	if !updated {
		return fmt.Errorf("%w: %s", ErrJobNotProcessing, jobID)
	}

	return nil
}

// CreateJob implements EnqueuerRepository
func (s *PostgresStorage) CreateJob(ctx context.Context, job *StoredJob) error {
	if job == nil {
		return errors.New("job cannot be nil")
	}

	var userID sql.NullString
	if job.TargetUserID != nil {
		userID = sql.NullString{String: *job.TargetUserID, Valid: true}
	}
	status := job.Status
	if status == "" {
		status = JobStatusPending
	}

	_, err := s.db.ExecContext(ctx, createJobQuery,
		job.ID,
		string(job.Type),
		userID,
		string(status),
		int64(job.Priority),
		job.ScheduledAt,
		job.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert background job: %w", err)
	}

	return nil
}
