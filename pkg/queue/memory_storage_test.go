package queue_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kultapp/jobengine/pkg/queue"
)

func storedJob(id string, jobType queue.JobType, priority queue.Priority, scheduledAt time.Time) *queue.StoredJob {
	return &queue.StoredJob{
		Job:         queue.Job{ID: id, Type: jobType},
		Priority:    priority,
		ScheduledAt: scheduledAt,
	}
}

func TestMemoryStorage_CreateJob(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := queue.NewMemoryStorage()

	require.Error(t, storage.CreateJob(ctx, nil))

	require.NoError(t, storage.CreateJob(ctx, storedJob("a", queue.JobTypeCleanupStale, 0, time.Time{})))
	err := storage.CreateJob(ctx, storedJob("a", queue.JobTypeCleanupStale, 0, time.Time{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	job, err := storage.Get("a")
	require.NoError(t, err)
	assert.Equal(t, queue.JobStatusPending, job.Status)
	assert.False(t, job.CreatedAt.IsZero())
	assert.Equal(t, job.CreatedAt, job.ScheduledAt)

	_, err = storage.Get("missing")
	assert.ErrorIs(t, err, queue.ErrJobNotFound)
}

func TestMemoryStorage_ClaimNextJob(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		job, err := queue.NewMemoryStorage().ClaimNextJob(context.Background())
		require.NoError(t, err)
		assert.Nil(t, job)
	})

	t.Run("priority then schedule order", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		storage := queue.NewMemoryStorage()
		past := time.Now().Add(-time.Hour)

		require.NoError(t, storage.CreateJob(ctx, storedJob("low", queue.JobTypeCalculateStats, queue.PriorityLow, past)))
		require.NoError(t, storage.CreateJob(ctx, storedJob("late", queue.JobTypeCalculateStats, queue.PriorityHigh, past.Add(time.Minute))))
		require.NoError(t, storage.CreateJob(ctx, storedJob("early", queue.JobTypeCalculateStats, queue.PriorityHigh, past)))
		require.NoError(t, storage.CreateJob(ctx, storedJob("default", queue.JobTypeCalculateStats, queue.PriorityDefault, past)))

		var order []string
		for {
			job, err := storage.ClaimNextJob(ctx)
			require.NoError(t, err)
			if job == nil {
				break
			}
			order = append(order, job.ID)
		}
		assert.Equal(t, []string{"early", "late", "default", "low"}, order)
	})

	t.Run("future jobs are not claimable", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		storage := queue.NewMemoryStorage()
		require.NoError(t, storage.CreateJob(ctx, storedJob("later", queue.JobTypeCleanupStale, queue.PriorityHigh, time.Now().Add(time.Hour))))

		job, err := storage.ClaimNextJob(ctx)
		require.NoError(t, err)
		assert.Nil(t, job)

		stored, err := storage.Get("later")
		require.NoError(t, err)
		assert.Equal(t, queue.JobStatusPending, stored.Status)
	})

	t.Run("claim marks processing", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		storage := queue.NewMemoryStorage()
		job := storedJob("u", queue.JobTypeGenerateMatches, 0, time.Time{})
		job.TargetUserID = strPtr("user-1")
		require.NoError(t, storage.CreateJob(ctx, job))

		claimed, err := storage.ClaimNextJob(ctx)
		require.NoError(t, err)
		assert.Equal(t, &queue.Job{ID: "u", Type: queue.JobTypeGenerateMatches, TargetUserID: strPtr("user-1")}, claimed)

		stored, err := storage.Get("u")
		require.NoError(t, err)
		assert.Equal(t, queue.JobStatusProcessing, stored.Status)
		assert.Equal(t, 1, stored.Attempts)
		assert.NotNil(t, stored.StartedAt)
	})

	t.Run("concurrent claims never share a job", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		storage := queue.NewMemoryStorage()

		const jobs = 50
		for i := range jobs {
			require.NoError(t, storage.CreateJob(ctx, storedJob(fmt.Sprintf("job-%d", i), queue.JobTypeCleanupStale, 0, time.Time{})))
		}

		var (
			mu      sync.Mutex
			claimed = make(map[string]int)
			wg      sync.WaitGroup
		)
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					job, err := storage.ClaimNextJob(ctx)
					if err != nil || job == nil {
						return
					}
					mu.Lock()
					claimed[job.ID]++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Len(t, claimed, jobs)
		for id, n := range claimed {
			assert.Equal(t, 1, n, id)
		}
	})
}

func TestMemoryStorage_CompleteJob(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := queue.NewMemoryStorage()
	require.NoError(t, storage.CreateJob(ctx, storedJob("ok", queue.JobTypeCleanupStale, 0, time.Time{})))
	require.NoError(t, storage.CreateJob(ctx, storedJob("bad", queue.JobTypeCalculateStats, -1, time.Time{})))

	err := storage.CompleteJob(ctx, "ok", true, nil)
	require.ErrorIs(t, err, queue.ErrJobNotProcessing)

	err = storage.CompleteJob(ctx, "missing", true, nil)
	require.ErrorIs(t, err, queue.ErrJobNotFound)

	_, err = storage.ClaimNextJob(ctx)
	require.NoError(t, err)
	_, err = storage.ClaimNextJob(ctx)
	require.NoError(t, err)

	require.NoError(t, storage.CompleteJob(ctx, "ok", true, nil))
	require.NoError(t, storage.CompleteJob(ctx, "bad", false, strPtr("boom")))

	okJob, err := storage.Get("ok")
	require.NoError(t, err)
	assert.Equal(t, queue.JobStatusCompleted, okJob.Status)
	assert.Nil(t, okJob.Error)
	assert.NotNil(t, okJob.CompletedAt)

	badJob, err := storage.Get("bad")
	require.NoError(t, err)
	assert.Equal(t, queue.JobStatusFailed, badJob.Status)
	assert.Equal(t, "boom", *badJob.Error)

	// Terminal jobs cannot be completed twice.
	assert.ErrorIs(t, storage.CompleteJob(ctx, "ok", false, nil), queue.ErrJobNotProcessing)
}
