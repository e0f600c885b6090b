package app

import "errors"

var (
	// ErrStoreNotConfigured is returned when an operation needs the database but DATABASE_URL is unset
	ErrStoreNotConfigured = errors.New("job store is not configured, set DATABASE_URL")

	ErrFailedToOpenEngine = errors.New("failed to open job engine")
)
