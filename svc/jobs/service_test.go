package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kultapp/jobengine/pkg/logger"
	"github.com/kultapp/jobengine/pkg/queue"
	"github.com/kultapp/jobengine/pkg/vectorizer"
	"github.com/kultapp/jobengine/svc/jobs"
)

var now = time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) GenerateDailyMatches(ctx context.Context, userID string, limit int) (int, error) {
	args := m.Called(ctx, userID, limit)
	return args.Int(0), args.Error(1)
}

func (m *mockStore) GetProfile(ctx context.Context, userID string) (jobs.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(jobs.Profile), args.Error(1)
}

func (m *mockStore) UpdateEmbedding(ctx context.Context, userID string, embedding vectorizer.Vector, at time.Time) error {
	return m.Called(ctx, userID, embedding, at).Error(0)
}

func (m *mockStore) CleanupRateLimits(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockStore) DeleteMatchesBefore(ctx context.Context, day time.Time) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) DeleteCompletedJobsBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) CalculateDailyStats(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockEmbedder struct {
	mock.Mock
}

func (m *mockEmbedder) ToVector(ctx context.Context, text string) (vectorizer.Vector, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(vectorizer.Vector), args.Error(1)
}

func newService(t *testing.T, store *mockStore, opts ...jobs.Option) *jobs.Service {
	t.Helper()
	opts = append([]jobs.Option{
		jobs.WithLogger(logger.Discard()),
		jobs.WithClock(func() time.Time { return now }),
	}, opts...)

	svc, err := jobs.New(store, opts...)
	require.NoError(t, err)
	return svc
}

func ptr(s string) *string { return &s }

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := jobs.New(nil)
	assert.ErrorIs(t, err, queue.ErrRepositoryNil)
}

func TestService_Handlers_BuildRegistry(t *testing.T) {
	t.Parallel()

	registry, err := queue.NewRegistry(newService(t, &mockStore{}).Handlers())
	require.NoError(t, err)

	for _, jt := range queue.JobTypes() {
		_, ok := registry.Lookup(jt)
		assert.True(t, ok, jt)
	}
}

func TestService_GenerateMatches(t *testing.T) {
	t.Parallel()

	t.Run("missing user", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		svc := newService(t, store)

		ok, err := svc.GenerateMatches(context.Background(), nil)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = svc.GenerateMatches(context.Background(), ptr(""))
		require.NoError(t, err)
		assert.False(t, ok)

		store.AssertNotCalled(t, "GenerateDailyMatches", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("success uses default limit", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("GenerateDailyMatches", mock.Anything, "u1", 20).Return(7, nil).Once()

		ok, err := newService(t, store).GenerateMatches(context.Background(), ptr("u1"))
		require.NoError(t, err)
		assert.True(t, ok)
		store.AssertExpectations(t)
	})

	t.Run("custom limit", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("GenerateDailyMatches", mock.Anything, "u1", 5).Return(5, nil).Once()

		ok, err := newService(t, store, jobs.WithMatchLimit(5)).GenerateMatches(context.Background(), ptr("u1"))
		require.NoError(t, err)
		assert.True(t, ok)
		store.AssertExpectations(t)
	})

	t.Run("store error", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("GenerateDailyMatches", mock.Anything, "u1", 20).Return(0, errors.New("rpc failed"))

		ok, err := newService(t, store).GenerateMatches(context.Background(), ptr("u1"))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestService_UpdateEmbeddings(t *testing.T) {
	t.Parallel()

	profile := jobs.Profile{
		DisplayName: "Alice",
		Bio:         "Loves hiking",
		LookingFor:  []string{"friends"},
		Interests:   []string{"chess", "jazz"},
	}
	text := "Alice. Loves hiking. friends. chess, jazz"
	vec := vectorizer.Vector{0.1, 0.2, 0.3}

	t.Run("missing user does not touch the store", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}

		ok, err := newService(t, store).UpdateEmbeddings(context.Background(), nil)
		require.NoError(t, err)
		assert.False(t, ok)
		store.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("GetProfile", mock.Anything, "u1").Return(profile, nil)
		store.On("UpdateEmbedding", mock.Anything, "u1", vec, now).Return(nil).Once()

		embedder := &mockEmbedder{}
		embedder.On("ToVector", mock.Anything, text).Return(vec, nil).Once()

		ok, err := newService(t, store, jobs.WithEmbedder(embedder)).UpdateEmbeddings(context.Background(), ptr("u1"))
		require.NoError(t, err)
		assert.True(t, ok)
		store.AssertExpectations(t)
		embedder.AssertExpectations(t)
	})

	t.Run("short text is skipped", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("GetProfile", mock.Anything, "u1").Return(jobs.Profile{DisplayName: "Al"}, nil)
		embedder := &mockEmbedder{}

		ok, err := newService(t, store, jobs.WithEmbedder(embedder)).UpdateEmbeddings(context.Background(), ptr("u1"))
		require.NoError(t, err)
		assert.True(t, ok)
		embedder.AssertNotCalled(t, "ToVector", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "UpdateEmbedding", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("profile fetch error", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("GetProfile", mock.Anything, "u1").Return(jobs.Profile{}, jobs.ErrProfileNotFound)

		ok, err := newService(t, store).UpdateEmbeddings(context.Background(), ptr("u1"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("no embedder configured", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("GetProfile", mock.Anything, "u1").Return(profile, nil)

		ok, err := newService(t, store).UpdateEmbeddings(context.Background(), ptr("u1"))
		require.NoError(t, err)
		assert.False(t, ok)
		store.AssertNotCalled(t, "UpdateEmbedding", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("embedding error", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("GetProfile", mock.Anything, "u1").Return(profile, nil)
		embedder := &mockEmbedder{}
		embedder.On("ToVector", mock.Anything, text).Return(nil, errors.New("status 500"))

		ok, err := newService(t, store, jobs.WithEmbedder(embedder)).UpdateEmbeddings(context.Background(), ptr("u1"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty embedding", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("GetProfile", mock.Anything, "u1").Return(profile, nil)
		embedder := &mockEmbedder{}
		embedder.On("ToVector", mock.Anything, text).Return(vectorizer.Vector{}, nil)

		ok, err := newService(t, store, jobs.WithEmbedder(embedder)).UpdateEmbeddings(context.Background(), ptr("u1"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("update error", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("GetProfile", mock.Anything, "u1").Return(profile, nil)
		store.On("UpdateEmbedding", mock.Anything, "u1", vec, now).Return(errors.New("write failed"))
		embedder := &mockEmbedder{}
		embedder.On("ToVector", mock.Anything, text).Return(vec, nil)

		ok, err := newService(t, store, jobs.WithEmbedder(embedder)).UpdateEmbeddings(context.Background(), ptr("u1"))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestService_CleanupStale(t *testing.T) {
	t.Parallel()

	cutoff := now.Add(-7 * 24 * time.Hour)
	day := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)

	t.Run("all succeed", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("CleanupRateLimits", mock.Anything).Return(nil).Once()
		store.On("DeleteMatchesBefore", mock.Anything, day).Return(int64(3), nil).Once()
		store.On("DeleteCompletedJobsBefore", mock.Anything, cutoff).Return(int64(12), nil).Once()

		ok, err := newService(t, store).CleanupStale(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		store.AssertExpectations(t)
	})

	t.Run("first failure does not stop the rest", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("CleanupRateLimits", mock.Anything).Return(errors.New("rpc failed")).Once()
		store.On("DeleteMatchesBefore", mock.Anything, day).Return(int64(0), nil).Once()
		store.On("DeleteCompletedJobsBefore", mock.Anything, cutoff).Return(int64(0), nil).Once()

		ok, err := newService(t, store).CleanupStale(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
		store.AssertExpectations(t)
	})

	t.Run("last failure", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("CleanupRateLimits", mock.Anything).Return(nil)
		store.On("DeleteMatchesBefore", mock.Anything, day).Return(int64(0), nil)
		store.On("DeleteCompletedJobsBefore", mock.Anything, cutoff).Return(int64(0), errors.New("delete failed"))

		ok, err := newService(t, store).CleanupStale(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("custom retention", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("CleanupRateLimits", mock.Anything).Return(nil)
		store.On("DeleteMatchesBefore", mock.Anything, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)).Return(int64(0), nil).Once()
		store.On("DeleteCompletedJobsBefore", mock.Anything, now.Add(-24*time.Hour)).Return(int64(0), nil).Once()

		ok, err := newService(t, store, jobs.WithRetention(24*time.Hour)).CleanupStale(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		store.AssertExpectations(t)
	})
}

func TestService_CalculateStats(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	store.On("CalculateDailyStats", mock.Anything).Return(nil).Once()
	ok, err := newService(t, store).CalculateStats(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	failing := &mockStore{}
	failing.On("CalculateDailyStats", mock.Anything).Return(errors.New("rpc failed"))
	ok, err = newService(t, failing).CalculateStats(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProfile_EmbeddingText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile jobs.Profile
		want    string
	}{
		{"empty", jobs.Profile{}, ""},
		{"name only", jobs.Profile{DisplayName: "Bob"}, "Bob"},
		{"skips empty parts", jobs.Profile{DisplayName: "Bob", Interests: []string{"go", "rust"}}, "Bob. go, rust"},
		{"empty lists", jobs.Profile{Bio: "Hi there", LookingFor: []string{}}, "Hi there"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.profile.EmbeddingText())
		})
	}
}
