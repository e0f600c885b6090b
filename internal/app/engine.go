// Package app assembles the job engine from configuration. Both binaries
// share it so the server and the CLI run the exact same dispatcher wiring.
package app

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kultapp/jobengine/migrations"
	"github.com/kultapp/jobengine/pkg/httpserver"
	"github.com/kultapp/jobengine/pkg/logger"
	"github.com/kultapp/jobengine/pkg/pg"
	"github.com/kultapp/jobengine/pkg/queue"
	"github.com/kultapp/jobengine/pkg/redis"
	"github.com/kultapp/jobengine/pkg/vectorizer"
	"github.com/kultapp/jobengine/svc/jobs"
)

// NewLogger builds the process logger for cfg. opts are applied last.
func NewLogger(cfg Config, opts ...logger.Option) *slog.Logger {
	return logger.New(append([]logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithLevelName(cfg.LogLevel),
	}, opts...)...)
}

// Engine owns the connections and the dispatcher built from them.
// Dispatcher and Enqueuer are nil when the store is not configured.
type Engine struct {
	Pool       *pgxpool.Pool
	Redis      *goredis.Client
	Dispatcher *queue.Dispatcher
	Enqueuer   *queue.Enqueuer

	cfg    Config
	db     *sql.DB
	logger *slog.Logger
}

// Open connects to the configured backends and wires the dispatcher.
// A missing DATABASE_URL is not an error: the engine starts without a
// dispatcher and Runner reports nil.
func Open(ctx context.Context, cfg Config, log *slog.Logger) (*Engine, error) {
	if log == nil {
		log = slog.Default()
	}
	e := &Engine{cfg: cfg, logger: log}

	if !cfg.Postgres.Configured() {
		log.WarnContext(ctx, "DATABASE_URL is not set, job processing is disabled")
		return e, nil
	}

	if err := e.open(ctx); err != nil {
		return nil, errors.Join(ErrFailedToOpenEngine, err, e.Close())
	}

	return e, nil
}

func (e *Engine) open(ctx context.Context) error {
	pool, err := pg.Connect(ctx, e.cfg.Postgres)
	if err != nil {
		return err
	}
	e.Pool = pool

	if e.cfg.Postgres.AutoMigrate {
		if err := e.Migrate(ctx); err != nil {
			return err
		}
	}

	e.db = stdlib.OpenDBFromPool(pool)

	storage, err := queue.NewPostgresStorage(e.db)
	if err != nil {
		return err
	}
	repo, err := jobs.NewRepository(e.db)
	if err != nil {
		return err
	}

	svcOpts := append(e.cfg.Jobs.Options(), jobs.WithLogger(e.logger))
	if e.cfg.Embeddings.Enabled() {
		v, err := vectorizer.NewFromConfig(e.cfg.Embeddings)
		if err != nil {
			return err
		}
		svcOpts = append(svcOpts, jobs.WithEmbedder(v))
	} else {
		e.logger.WarnContext(ctx, "OPENAI_API_KEY is not set, update_embeddings jobs will fail")
	}

	svc, err := jobs.New(repo, svcOpts...)
	if err != nil {
		return err
	}
	registry, err := queue.NewRegistry(svc.Handlers())
	if err != nil {
		return err
	}

	outbox, err := e.outbox(ctx)
	if err != nil {
		return err
	}

	e.Dispatcher, err = queue.NewDispatcher(storage, registry,
		queue.WithOutbox(outbox),
		queue.WithReplayLimit(e.cfg.Queue.ReplayLimit),
		queue.WithDispatcherLogger(e.logger.With(logger.Component("dispatcher"))),
	)
	if err != nil {
		return err
	}

	e.Enqueuer, err = queue.NewEnqueuer(storage)
	return err
}

// outbox picks Redis when configured and a process-local outbox otherwise.
func (e *Engine) outbox(ctx context.Context) (queue.Outbox, error) {
	if !e.cfg.Redis.Configured() {
		return queue.NewMemoryOutbox(), nil
	}

	client, err := redis.Connect(ctx, e.cfg.Redis)
	if err != nil {
		return nil, err
	}
	e.Redis = client

	return queue.NewRedisOutbox(client, e.cfg.Queue.OutboxKey)
}

// Migrate applies the embedded schema.
func (e *Engine) Migrate(ctx context.Context) error {
	if e.Pool == nil {
		return ErrStoreNotConfigured
	}
	return pg.Migrate(ctx, e.Pool, e.cfg.Postgres, migrations.FS, e.logger)
}

// Runner returns the dispatcher as a queue.Runner, or an untyped nil when
// the store is not configured.
func (e *Engine) Runner() queue.Runner {
	if e.Dispatcher == nil {
		return nil
	}
	return e.Dispatcher
}

// Checks lists the readiness probes for the open backends.
func (e *Engine) Checks() []httpserver.Check {
	var checks []httpserver.Check
	if e.Pool != nil {
		checks = append(checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(e.Pool)})
	}
	if e.Redis != nil {
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(e.Redis)})
	}
	return checks
}

// Close releases every open connection.
func (e *Engine) Close() error {
	var errs []error
	if e.db != nil {
		errs = append(errs, e.db.Close())
	}
	if e.Pool != nil {
		e.Pool.Close()
	}
	if e.Redis != nil {
		errs = append(errs, e.Redis.Close())
	}
	return errors.Join(errs...)
}
