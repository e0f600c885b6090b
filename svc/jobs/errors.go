package jobs

import "errors"

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrEmbedderDisabled = errors.New("embedding provider is not configured")
	ErrEmptyEmbedding   = errors.New("embedding provider returned an empty vector")
)
