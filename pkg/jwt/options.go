package jwt

import "time"

// Option configures a Service.
type Option func(*Service)

// WithAudience requires the aud claim to equal audience.
func WithAudience(audience string) Option {
	return func(s *Service) {
		s.audience = audience
	}
}

// WithLeeway tolerates clock skew when checking exp and nbf.
func WithLeeway(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.leeway = d
		}
	}
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
