package jobs

import (
	"log/slog"
	"time"
)

// Option configures a Service
type Option func(*Service)

// WithEmbedder enables update_embeddings. Without it every such job fails.
func WithEmbedder(e Embedder) Option {
	return func(s *Service) {
		s.embedder = e
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

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMatchLimit sets how many matches generate_matches asks for. Default 20.
func WithMatchLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.matchLimit = n
		}
	}
}

// WithRetention sets the age after which cleanup_stale deletes matches and
// completed jobs. Default 7 days.
func WithRetention(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.retention = d
		}
	}
}

// WithMinEmbeddingText sets the shortest profile text worth embedding. Default 10.
func WithMinEmbeddingText(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.minTextLen = n
		}
	}
}
