// Package pg connects the engine to PostgreSQL using the pgx/v5 driver.
//
// It covers three concerns:
//
//   - Config: connection and pool settings read from the environment via
//     github.com/caarlos0/env. DATABASE_URL is optional at parse time; callers
//     check Configured and treat its absence as an engine misconfiguration.
//   - Connect: opens a *pgxpool.Pool, retrying with a growing delay until the
//     database answers a ping.
//   - Migrate: applies goose migrations from an fs.FS (the engine ships its
//     queue schema in the migrations package).
//
// Repositories that prefer database/sql can share the pool through
// stdlib.OpenDBFromPool.
//
// # Usage
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, migrations.FS, slog.Default()); err != nil {
//	    return err
//	}
//
// # Error Handling
//
// Sentinel errors are joined with the driver error via errors.Join, so both
// errors.Is(err, pg.ErrX) and the underlying cause stay inspectable.
// IsNotFoundError treats pgx.ErrNoRows and sql.ErrNoRows alike.
package pg
