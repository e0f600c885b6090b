package jobs

import "time"

// Config holds the handler tuning knobs.
type Config struct {
	MatchLimit       int           `env:"JOBS_MATCH_LIMIT" envDefault:"20"`
	Retention        time.Duration `env:"JOBS_RETENTION" envDefault:"168h"`
	MinEmbeddingText int           `env:"JOBS_MIN_EMBEDDING_TEXT" envDefault:"10"`
}

// Options converts cfg into service options.
func (c Config) Options() []Option {
	return []Option{
		WithMatchLimit(c.MatchLimit),
		WithRetention(c.Retention),
		WithMinEmbeddingText(c.MinEmbeddingText),
	}
}
