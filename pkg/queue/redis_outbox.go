package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultOutboxKey is the Redis list that stores parked completions.
const DefaultOutboxKey = "jobengine:completion_outbox"

// deadLetterSuffix names the list that keeps entries Pop could not decode.
const deadLetterSuffix = ":dead"

// RedisOutbox stores parked completions in a Redis list so they survive
// process restarts and are shared between engine instances.
type RedisOutbox struct {
	client redis.UniversalClient
	key    string
}

// NewRedisOutbox creates an outbox backed by the given client.
// An empty key falls back to DefaultOutboxKey.
func NewRedisOutbox(client redis.UniversalClient, key string) (*RedisOutbox, error) {
	if client == nil {
		return nil, ErrRepositoryNil
	}
	if key == "" {
		key = DefaultOutboxKey
	}

	return &RedisOutbox{client: client, key: key}, nil
}

// Push appends c to the head of the list; Pop reads from the tail.
func (o *RedisOutbox) Push(ctx context.Context, c Completion) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal completion for job %s: %w", c.JobID, err)
	}

	if err := o.client.LPush(ctx, o.key, data).Err(); err != nil {
		return fmt.Errorf("failed to push completion for job %s: %w", c.JobID, err)
	}

	return nil
}

// Requeue appends c to the tail, where Pop reads next.
func (o *RedisOutbox) Requeue(ctx context.Context, c Completion) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal completion for job %s: %w", c.JobID, err)
	}

	if err := o.client.RPush(ctx, o.key, data).Err(); err != nil {
		return fmt.Errorf("failed to requeue completion for job %s: %w", c.JobID, err)
	}

	return nil
}

// Pop removes the oldest entry. Entries that fail to decode are moved to the
// dead-letter list and reported as ErrOutboxEntryInvalid.
func (o *RedisOutbox) Pop(ctx context.Context) (*Completion, error) {
	data, err := o.client.RPop(ctx, o.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrOutboxEmpty
		}
		return nil, fmt.Errorf("failed to pop completion: %w", err)
	}

	var c Completion
	if err := json.Unmarshal(data, &c); err != nil {
		if dlErr := o.client.LPush(ctx, o.DeadLetterKey(), data).Err(); dlErr != nil {
			return nil, errors.Join(ErrOutboxEntryInvalid, err, dlErr)
		}
		return nil, errors.Join(ErrOutboxEntryInvalid, err)
	}

	return &c, nil
}

// DeadLetterKey is the list holding entries that could not be decoded.
func (o *RedisOutbox) DeadLetterKey() string {
	return o.key + deadLetterSuffix
}
