package redis

import "time"

// Config describes the optional Redis connection used for the completion outbox.
type Config struct {
	// ConnectionURL has the form "redis://:password@localhost:6379/0". Empty disables Redis.
	ConnectionURL  string        `env:"REDIS_URL"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"15s"`
}

// Configured reports whether a connection URL is set.
func (c Config) Configured() bool {
	return c.ConnectionURL != ""
}
