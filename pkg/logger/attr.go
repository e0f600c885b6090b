package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// JobID records the job identifier under the key "job_id".
func JobID(id string) slog.Attr {
	return slog.String("job_id", id)
}

// JobType records the job type tag under the key "job_type".
func JobType(t string) slog.Attr {
	return slog.String("job_type", t)
}

// UserID records the target user under the key "user_id".
// A nil or empty id yields an empty Attr.
func UserID(id *string) slog.Attr {
	if id == nil || *id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", *id)
}

// Reason records an optional failure reason under the key "reason".
func Reason(msg *string) slog.Attr {
	if msg == nil {
		return slog.Attr{}
	}
	return slog.String("reason", *msg)
}

// Count records a number of affected items under the key "count".
func Count(n int64) slog.Attr {
	return slog.Int64("count", n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// RequestID records the request identifier under the key "request_id".
// An empty id yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}
