package trigger_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kultapp/jobengine/modules/trigger"
	"github.com/kultapp/jobengine/pkg/jwt"
	"github.com/kultapp/jobengine/pkg/logger"
	"github.com/kultapp/jobengine/pkg/queue"
)

const cronSecret = "cron-secret"

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context) (*queue.Result, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queue.Result), args.Error(1)
}

func newHandler(runner trigger.Runner, opts ...trigger.Option) http.Handler {
	cfg := trigger.Config{
		CronSecret:     cronSecret,
		AllowedOrigins: []string{"https://app.example.com", "http://localhost:3000"},
	}
	opts = append([]trigger.Option{trigger.WithLogger(logger.Discard())}, opts...)
	return trigger.NewService(cfg, runner, opts...).Handle()
}

func do(h http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func ptr(s string) *string { return &s }

func TestTrigger_Preflight(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{}
	h := newHandler(runner)

	t.Run("allowed origin is echoed", func(t *testing.T) {
		rec := do(h, http.MethodOptions, "/", map[string]string{"Origin": "http://localhost:3000"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "authorization, x-client-info, apikey, content-type, x-cron-secret", rec.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("unknown origin falls back to first entry", func(t *testing.T) {
		rec := do(h, http.MethodOptions, "/jobs/process", map[string]string{"Origin": "https://evil.example.com"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	runner.AssertNotCalled(t, "Run", mock.Anything)
}

func TestTrigger_Authentication(t *testing.T) {
	t.Parallel()

	t.Run("no credentials", func(t *testing.T) {
		t.Parallel()
		runner := &mockRunner{}
		rec := do(newHandler(runner), http.MethodPost, "/", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		runner.AssertNotCalled(t, "Run", mock.Anything)
	})

	t.Run("wrong cron secret", func(t *testing.T) {
		t.Parallel()
		runner := &mockRunner{}
		rec := do(newHandler(runner), http.MethodPost, "/", map[string]string{"X-Cron-Secret": "nope"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid cron secret"}`, rec.Body.String())
		runner.AssertNotCalled(t, "Run", mock.Anything)
	})

	t.Run("wrong cron secret is not rescued by authorization", func(t *testing.T) {
		t.Parallel()
		runner := &mockRunner{}
		rec := do(newHandler(runner), http.MethodPost, "/", map[string]string{
			"X-Cron-Secret": "nope",
			"Authorization": "Bearer anything",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid cron secret"}`, rec.Body.String())
	})

	t.Run("cron secret without configured secret", func(t *testing.T) {
		t.Parallel()
		runner := &mockRunner{}
		h := trigger.NewService(trigger.Config{}, runner, trigger.WithLogger(logger.Discard())).Handle()
		rec := do(h, http.MethodPost, "/", map[string]string{"X-Cron-Secret": "anything"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid cron secret"}`, rec.Body.String())
		runner.AssertNotCalled(t, "Run", mock.Anything)
	})

	t.Run("valid cron secret", func(t *testing.T) {
		t.Parallel()
		runner := &mockRunner{}
		runner.On("Run", mock.Anything).Return(nil, nil).Once()
		rec := do(newHandler(runner), http.MethodPost, "/", map[string]string{"X-Cron-Secret": cronSecret})

		assert.Equal(t, http.StatusOK, rec.Code)
		runner.AssertExpectations(t)
	})

	t.Run("authorization presence without verifier", func(t *testing.T) {
		t.Parallel()
		runner := &mockRunner{}
		runner.On("Run", mock.Anything).Return(nil, nil).Once()
		rec := do(newHandler(runner), http.MethodPost, "/", map[string]string{"Authorization": "Bearer opaque"})

		assert.Equal(t, http.StatusOK, rec.Code)
		runner.AssertExpectations(t)
	})
}

func TestTrigger_BearerVerification(t *testing.T) {
	t.Parallel()

	svc, err := jwt.NewFromString("jwt-secret")
	require.NoError(t, err)

	valid, err := svc.Generate(jwt.Claims{
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()},
		Role:           "service_role",
	})
	require.NoError(t, err)

	expired, err := svc.Generate(jwt.StandardClaims{ExpiresAt: time.Now().Add(-time.Hour).Unix()})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, `{"message":"No pending jobs"}`},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized, `{"error":"Invalid bearer token"}`},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized, `{"error":"Invalid bearer token"}`},
		{"not a bearer", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, `{"error":"Invalid bearer token"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runner := &mockRunner{}
			runner.On("Run", mock.Anything).Return(nil, nil).Maybe()

			rec := do(newHandler(runner, trigger.WithTokenVerifier(svc)), http.MethodPost, "/", map[string]string{
				"Authorization": tt.header,
			})

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
			if tt.status != http.StatusOK {
				runner.AssertNotCalled(t, "Run", mock.Anything)
			}
		})
	}
}

func TestTrigger_AnyMethod(t *testing.T) {
	t.Parallel()

	methods := []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}
	for _, method := range methods {
		t.Run(method, func(t *testing.T) {
			t.Parallel()
			runner := &mockRunner{}
			runner.On("Run", mock.Anything).Return(nil, nil).Once()
			h := newHandler(runner)

			rec := do(h, method, "/jobs/process", map[string]string{"X-Cron-Secret": cronSecret})
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"message":"No pending jobs"}`, rec.Body.String())

			rec = do(h, method, "/", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
			runner.AssertExpectations(t)
		})
	}
}

func TestTrigger_Processing(t *testing.T) {
	t.Parallel()

	auth := map[string]string{"X-Cron-Secret": cronSecret}

	t.Run("misconfigured engine", func(t *testing.T) {
		t.Parallel()
		rec := do(newHandler(nil), http.MethodPost, "/", auth)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Server misconfigured"}`, rec.Body.String())
	})

	t.Run("misconfigured engine still requires auth", func(t *testing.T) {
		t.Parallel()
		rec := do(newHandler(nil), http.MethodPost, "/", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("claim failure", func(t *testing.T) {
		t.Parallel()
		runner := &mockRunner{}
		runner.On("Run", mock.Anything).Return(nil, errors.Join(queue.ErrFailedToClaimJob, errors.New("connection refused")))

		rec := do(newHandler(runner), http.MethodPost, "/", auth)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Failed to fetch job"}`, rec.Body.String())
	})

	t.Run("empty queue", func(t *testing.T) {
		t.Parallel()
		runner := &mockRunner{}
		runner.On("Run", mock.Anything).Return(nil, nil)

		rec := do(newHandler(runner), http.MethodGet, "/jobs/process", auth)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"message":"No pending jobs"}`, rec.Body.String())
	})

	t.Run("job processed", func(t *testing.T) {
		t.Parallel()
		runner := &mockRunner{}
		runner.On("Run", mock.Anything).Return(&queue.Result{
			JobID:   "j1",
			JobType: queue.JobTypeGenerateMatches,
			Success: true,
		}, nil)

		rec := do(newHandler(runner), http.MethodPost, "/jobs/process", auth)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"job_id":"j1","job_type":"generate_matches","success":true,"error":null}`, rec.Body.String())
	})

	t.Run("job failed", func(t *testing.T) {
		t.Parallel()
		runner := &mockRunner{}
		runner.On("Run", mock.Anything).Return(&queue.Result{
			JobID:   "j2",
			JobType: queue.JobType("send_newsletter"),
			Success: false,
			Error:   ptr("Unknown job type: send_newsletter"),
		}, nil)

		rec := do(newHandler(runner), http.MethodPost, "/", auth)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"job_id":"j2","job_type":"send_newsletter","success":false,"error":"Unknown job type: send_newsletter"}`, rec.Body.String())
	})

	t.Run("unexpected panic", func(t *testing.T) {
		t.Parallel()
		runner := &mockRunner{}
		runner.On("Run", mock.Anything).Panic("boom")

		rec := do(newHandler(runner), http.MethodPost, "/", auth)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
	})
}

func TestTrigger_EndToEnd(t *testing.T) {
	t.Parallel()

	storage := queue.NewMemoryStorage()
	enqueuer, err := queue.NewEnqueuer(storage)
	require.NoError(t, err)

	jobID, err := enqueuer.Enqueue(context.Background(), queue.JobTypeGenerateMatches, queue.WithTargetUser("u1"))
	require.NoError(t, err)

	var gotUser string
	registry, err := queue.NewRegistry(queue.Handlers{
		GenerateMatches: func(_ context.Context, userID *string) (bool, error) {
			gotUser = *userID
			return true, nil
		},
		UpdateEmbeddings: func(context.Context, *string) (bool, error) { return true, nil },
		CleanupStale:     func(context.Context) (bool, error) { return true, nil },
		CalculateStats:   func(context.Context) (bool, error) { return true, nil },
	})
	require.NoError(t, err)

	dispatcher, err := queue.NewDispatcher(storage, registry, queue.WithDispatcherLogger(logger.Discard()))
	require.NoError(t, err)

	h := newHandler(dispatcher)
	auth := map[string]string{"X-Cron-Secret": cronSecret}

	rec := do(h, http.MethodPost, "/", auth)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"job_id":"`+jobID+`","job_type":"generate_matches","success":true,"error":null}`, rec.Body.String())
	assert.Equal(t, "u1", gotUser)

	stored, err := storage.Get(jobID)
	require.NoError(t, err)
	assert.Equal(t, queue.JobStatusCompleted, stored.Status)

	rec = do(h, http.MethodPost, "/", auth)
	assert.JSONEq(t, `{"message":"No pending jobs"}`, rec.Body.String())
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	_, ok := trigger.RequestIDExtractor(context.Background())
	assert.False(t, ok)

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	attr, ok := trigger.RequestIDExtractor(ctx)
	require.True(t, ok)
	assert.Equal(t, "req-1", attr.Value.String())
}
