package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/kultapp/jobengine/pkg/logger"
	"github.com/kultapp/jobengine/pkg/queue"
	"github.com/kultapp/jobengine/pkg/vectorizer"
)

const (
	DefaultMatchLimit    = 20
	DefaultRetention     = 7 * 24 * time.Hour
	DefaultMinTextLength = 10
)

type (
	// MatchGenerator computes a user's daily matches and returns how many were created.
	MatchGenerator interface {
		GenerateDailyMatches(ctx context.Context, userID string, limit int) (int, error)
	}

	// ProfileRepository reads profiles and stores their embeddings.
	ProfileRepository interface {
		GetProfile(ctx context.Context, userID string) (Profile, error)
		UpdateEmbedding(ctx context.Context, userID string, embedding vectorizer.Vector, at time.Time) error
	}

	// Maintenance prunes stale records.
	Maintenance interface {
		CleanupRateLimits(ctx context.Context) error
		DeleteMatchesBefore(ctx context.Context, day time.Time) (int64, error)
		DeleteCompletedJobsBefore(ctx context.Context, before time.Time) (int64, error)
	}

	// StatsAggregator runs the daily statistics procedure.
	StatsAggregator interface {
		CalculateDailyStats(ctx context.Context) error
	}

	// Embedder turns text into a vector.
	Embedder interface {
		ToVector(ctx context.Context, text string) (vectorizer.Vector, error)
	}

	// Store is everything the job handlers need from the database.
	Store interface {
		MatchGenerator
		ProfileRepository
		Maintenance
		StatsAggregator
	}
)

// Service implements the handler for every job type.
// Handlers report recoverable failures as (false, nil) after logging them.
type Service struct {
	store      Store
	embedder   Embedder
	logger     *slog.Logger
	now        func() time.Time
	matchLimit int
	retention  time.Duration
	minTextLen int
}

// New creates the job handlers over store.
func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, queue.ErrRepositoryNil
	}

	s := &Service{
		store:      store,
		logger:     slog.Default(),
		now:        time.Now,
		matchLimit: DefaultMatchLimit,
		retention:  DefaultRetention,
		minTextLen: DefaultMinTextLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("jobs"))

	return s, nil
}

// Handlers returns the registry wiring for this service.
func (s *Service) Handlers() queue.Handlers {
	return queue.Handlers{
		GenerateMatches:  s.GenerateMatches,
		UpdateEmbeddings: s.UpdateEmbeddings,
		CleanupStale:     s.CleanupStale,
		CalculateStats:   s.CalculateStats,
	}
}

// GenerateMatches computes the daily matches for userID.
func (s *Service) GenerateMatches(ctx context.Context, userID *string) (bool, error) {
	if userID == nil || *userID == "" {
		s.logger.ErrorContext(ctx, "generate_matches requires target_user_id")
		return false, nil
	}

	count, err := s.store.GenerateDailyMatches(ctx, *userID, s.matchLimit)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to generate matches",
			logger.UserID(userID),
			logger.Error(err))
		return false, nil
	}

	s.logger.InfoContext(ctx, "generated matches",
		logger.UserID(userID),
		logger.Count(int64(count)))
	return true, nil
}

// UpdateEmbeddings recomputes the profile embedding for userID.
// Profiles with too little text are skipped and count as success.
func (s *Service) UpdateEmbeddings(ctx context.Context, userID *string) (bool, error) {
	if userID == nil || *userID == "" {
		s.logger.ErrorContext(ctx, "update_embeddings requires target_user_id")
		return false, nil
	}

	profile, err := s.store.GetProfile(ctx, *userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch profile",
			logger.UserID(userID),
			logger.Error(err))
		return false, nil
	}

	text := profile.EmbeddingText()
	if textLen(text) < s.minTextLen {
		s.logger.DebugContext(ctx, "profile text too short, skipping embedding",
			logger.UserID(userID))
		return true, nil
	}

	embedding, err := s.embed(ctx, text)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to generate embedding",
			logger.UserID(userID),
			logger.Error(err))
		return false, nil
	}

	if err := s.store.UpdateEmbedding(ctx, *userID, embedding, s.now().UTC()); err != nil {
		s.logger.ErrorContext(ctx, "failed to update embedding",
			logger.UserID(userID),
			logger.Error(err))
		return false, nil
	}

	return true, nil
}

func (s *Service) embed(ctx context.Context, text string) (vectorizer.Vector, error) {
	if s.embedder == nil {
		return nil, ErrEmbedderDisabled
	}

	vec, err := s.embedder.ToVector(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(vec) == 0 {
		return nil, ErrEmptyEmbedding
	}

	return vec, nil
}

// CleanupStale runs every maintenance deletion even when an earlier one
// fails, and succeeds only if all of them did.
func (s *Service) CleanupStale(ctx context.Context) (bool, error) {
	cutoff := s.now().UTC().Add(-s.retention)
	ok := true

	if err := s.store.CleanupRateLimits(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to cleanup rate limits", logger.Error(err))
		ok = false
	}

	day := time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, time.UTC)
	if n, err := s.store.DeleteMatchesBefore(ctx, day); err != nil {
		s.logger.ErrorContext(ctx, "failed to cleanup old matches", logger.Error(err))
		ok = false
	} else {
		s.logger.InfoContext(ctx, "deleted old matches", logger.Count(n))
	}

	if n, err := s.store.DeleteCompletedJobsBefore(ctx, cutoff); err != nil {
		s.logger.ErrorContext(ctx, "failed to cleanup old jobs", logger.Error(err))
		ok = false
	} else {
		s.logger.InfoContext(ctx, "deleted completed jobs", logger.Count(n))
	}

	return ok, nil
}

// CalculateStats runs the daily statistics aggregation.
func (s *Service) CalculateStats(ctx context.Context) (bool, error) {
	if err := s.store.CalculateDailyStats(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to calculate stats", logger.Error(err))
		return false, nil
	}

	s.logger.InfoContext(ctx, "daily stats calculated")
	return true, nil
}
