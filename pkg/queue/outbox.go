package queue

import (
	"context"
	"sync"
)

// Outbox holds completions that could not be written to the store.
// Implementations are best-effort; a lost entry means the store keeps the
// job in whatever state the failed write left it.
type Outbox interface {
	Push(ctx context.Context, c Completion) error
	// Requeue returns a popped entry to the front so it is the next one popped.
	Requeue(ctx context.Context, c Completion) error
	// Pop removes and returns the oldest entry, or ErrOutboxEmpty.
	Pop(ctx context.Context) (*Completion, error)
}

// MemoryOutbox is a process-local FIFO outbox for tests and single-process setups.
type MemoryOutbox struct {
	mu      sync.Mutex
	entries []Completion
}

// NewMemoryOutbox creates an empty in-memory outbox.
func NewMemoryOutbox() *MemoryOutbox {
	return &MemoryOutbox{}
}

func (o *MemoryOutbox) Push(_ context.Context, c Completion) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.entries = append(o.entries, c)
	return nil
}

func (o *MemoryOutbox) Requeue(_ context.Context, c Completion) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.entries = append([]Completion{c}, o.entries...)
	return nil
}

func (o *MemoryOutbox) Pop(_ context.Context) (*Completion, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.entries) == 0 {
		return nil, ErrOutboxEmpty
	}

	c := o.entries[0]
	o.entries = o.entries[1:]
	return &c, nil
}

// Len returns the number of parked completions.
func (o *MemoryOutbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return len(o.entries)
}
