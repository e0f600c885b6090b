package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kultapp/jobengine/pkg/pg"
	"github.com/kultapp/jobengine/pkg/queue"
	"github.com/kultapp/jobengine/pkg/vectorizer"
)

const (
	generateMatchesQuery = `SELECT generate_daily_matches($1::uuid, $2)`
	getProfileQuery      = `SELECT
		coalesce(display_name, ''),
		coalesce(bio, ''),
		coalesce(to_json(looking_for), '[]')::text,
		coalesce(to_json(interests), '[]')::text
	FROM profiles WHERE id = $1::uuid`
	updateEmbeddingQuery    = `UPDATE profiles SET embedding = $2::vector, embedding_updated_at = $3 WHERE id = $1::uuid`
	cleanupRateLimitsQuery  = `SELECT cleanup_rate_limits()`
	deleteOldMatchesQuery   = `DELETE FROM daily_matches WHERE calculated_at < $1::date`
	deleteCompletedJobQuery = `DELETE FROM background_jobs WHERE status = $1 AND completed_at < $2`
	calculateStatsQuery     = `SELECT calculate_daily_stats()`
)

// Repository implements Store on top of the application database.
type Repository struct {
	db *sql.DB
}

// NewRepository wraps db. Use stdlib.OpenDBFromPool to share a pgx pool.
func NewRepository(db *sql.DB) (*Repository, error) {
	if db == nil {
		return nil, queue.ErrRepositoryNil
	}
	return &Repository{db: db}, nil
}

func (r *Repository) GenerateDailyMatches(ctx context.Context, userID string, limit int) (int, error) {
	var count sql.NullInt64
	if err := r.db.QueryRowContext(ctx, generateMatchesQuery, userID, limit).Scan(&count); err != nil {
		return 0, fmt.Errorf("generate_daily_matches: %w", err)
	}
	return int(count.Int64), nil
}

func (r *Repository) GetProfile(ctx context.Context, userID string) (Profile, error) {
	var (
		p                    Profile
		lookingFor, interest string
	)

	err := r.db.QueryRowContext(ctx, getProfileQuery, userID).
		Scan(&p.DisplayName, &p.Bio, &lookingFor, &interest)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, userID)
		}
		return Profile{}, fmt.Errorf("select profile: %w", err)
	}

	if p.LookingFor, err = decodeTextArray(lookingFor); err != nil {
		return Profile{}, fmt.Errorf("decode looking_for: %w", err)
	}
	if p.Interests, err = decodeTextArray(interest); err != nil {
		return Profile{}, fmt.Errorf("decode interests: %w", err)
	}

	return p, nil
}

func (r *Repository) UpdateEmbedding(ctx context.Context, userID string, embedding vectorizer.Vector, at time.Time) error {
	res, err := r.db.ExecContext(ctx, updateEmbeddingQuery, userID, embedding.Literal(), at)
	if err != nil {
		return fmt.Errorf("update embedding: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update embedding: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, userID)
	}

	return nil
}

func (r *Repository) CleanupRateLimits(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, cleanupRateLimitsQuery); err != nil {
		return fmt.Errorf("cleanup_rate_limits: %w", err)
	}
	return nil
}

// DeleteMatchesBefore removes matches calculated before day. Only the date
// part of day is used.
func (r *Repository) DeleteMatchesBefore(ctx context.Context, day time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteOldMatchesQuery, day.Format(time.DateOnly))
	if err != nil {
		return 0, fmt.Errorf("delete daily_matches: %w", err)
	}
	return res.RowsAffected()
}

func (r *Repository) DeleteCompletedJobsBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteCompletedJobQuery, string(queue.JobStatusCompleted), before)
	if err != nil {
		return 0, fmt.Errorf("delete background_jobs: %w", err)
	}
	return res.RowsAffected()
}

func (r *Repository) CalculateDailyStats(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, calculateStatsQuery); err != nil {
		return fmt.Errorf("calculate_daily_stats: %w", err)
	}
	return nil
}

// decodeTextArray parses a JSON-encoded text[] column. JSON null yields nil.
func decodeTextArray(raw string) ([]string, error) {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}
