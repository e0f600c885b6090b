package pg

import "time"

// Config describes the store connection. ConnectionString is optional at parse
// time so a missing value surfaces as an engine misconfiguration instead of a
// startup panic; check Configured before connecting.
type Config struct {
	ConnectionString  string        `env:"DATABASE_URL"`                           // ConnectionString is the connection string to the database, including the privileged credential.
	MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"5"`       // MaxOpenConns is the maximum number of open connections to the database.
	MaxIdleConns      int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"1"`       // MaxIdleConns is the minimum number of idle connections kept in the pool.
	HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`  // HealthCheckPeriod is the period between health checks.
	MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"` // MaxConnIdleTime is the maximum amount of time a connection may be idle to be reused.
	MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`  // MaxConnLifetime is the maximum amount of time a connection may be reused.

	RetryAttempts int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`  // RetryAttempts is the number of retry attempts to connect to the database.
	RetryInterval time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"2s"` // RetryInterval is the base interval between retry attempts.

	AutoMigrate     bool   `env:"PG_AUTO_MIGRATE" envDefault:"false"`                 // AutoMigrate applies embedded migrations on startup.
	MigrationsTable string `env:"PG_MIGRATIONS_TABLE" envDefault:"jobengine_migrations"` // MigrationsTable is the name of the table used to store the migration version.
}

// Configured reports whether a connection string was provided.
func (c Config) Configured() bool {
	return c.ConnectionString != ""
}
