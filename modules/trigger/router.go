package trigger

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kultapp/jobengine/handler"
	"github.com/kultapp/jobengine/pkg/logger"
)

// Service is the HTTP entry point that runs one job per authenticated call.
type Service struct {
	cfg      Config
	runner   Runner
	verifier TokenVerifier
	logger   *slog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithTokenVerifier enables bearer token verification.
func WithTokenVerifier(v TokenVerifier) Option {
	return func(s *Service) {
		s.verifier = v
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates the trigger endpoint. runner may be nil when the store
// is not configured; every authenticated request then fails with
// "Server misconfigured".
func NewService(cfg Config, runner Runner, opts ...Option) *Service {
	s := &Service{
		cfg:    cfg,
		runner: runner,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("trigger"))

	return s
}

// Handle returns the trigger routes. The same handler answers every method
// on "/" and "/jobs/process"; OPTIONS is answered by the CORS layer.
//
//	r := chi.NewRouter()
//	r.Mount("/", trigger.NewService(cfg, dispatcher).Handle())
func (s *Service) Handle() http.Handler {
	auth := authenticator{
		cronSecret: []byte(s.cfg.CronSecret),
		verifier:   s.verifier,
		logger:     s.logger,
	}

	h := handler.Wrap(process(s.runner, s.logger),
		handler.WithDecorators(recoverer(s.logger), auth.decorate),
		handler.WithErrorHandler[handler.Context, struct{}](handler.NewErrorHandler[handler.Context](s.logger)),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(cors(s.cfg.AllowedOrigins))

	for _, path := range []string{"/", "/jobs/process"} {
		r.HandleFunc(path, h)
	}

	return r
}

// RequestIDExtractor adds the chi request id to log records.
func RequestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id := middleware.GetReqID(ctx)
	if id == "" {
		return slog.Attr{}, false
	}
	return logger.RequestID(id), true
}
