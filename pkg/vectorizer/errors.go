package vectorizer

import "errors"

// Domain errors for vectorization operations.
var (
	ErrProviderNotSet        = errors.New("vectorization provider not set")
	ErrEmptyText             = errors.New("text cannot be empty")
	ErrVectorizationFailed   = errors.New("failed to vectorize text")
	ErrInvalidDimensions     = errors.New("invalid vector dimensions")
	ErrAPIKeyRequired        = errors.New("API key is required")
	ErrInvalidModel          = errors.New("invalid model name")
	ErrRateLimitExceeded     = errors.New("rate limit exceeded")
	ErrContextLengthExceeded = errors.New("text exceeds maximum context length")
	ErrEmptyResponse         = errors.New("embedding response contained no data")
)
