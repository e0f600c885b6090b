package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/kultapp/jobengine/pkg/logger"
)

// Runner processes at most one job per call. Dispatcher implements it.
type Runner interface {
	Run(ctx context.Context) (*Result, error)
}

// DrainStats counts the jobs a Drain call processed.
type DrainStats struct {
	Processed int `json:"processed"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Drainer calls a Runner back to back until the queue reports no pending
// jobs. Jobs still run one at a time, each with its own claim and completion.
type Drainer struct {
	runner  Runner
	maxJobs int
	pause   time.Duration
	logger  *slog.Logger
}

// NewDrainer creates a drainer over runner.
func NewDrainer(runner Runner, opts ...DrainerOption) (*Drainer, error) {
	if runner == nil {
		return nil, ErrRunnerNil
	}

	options := &drainerOptions{
		maxJobs: 100,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	return &Drainer{
		runner:  runner,
		maxJobs: options.maxJobs,
		pause:   options.pause,
		logger:  options.logger,
	}, nil
}

// Drain runs jobs until the queue is empty, the job limit is reached, ctx is
// cancelled, or a claim fails. The claim error is returned with the stats
// gathered so far; cancellation is not an error.
func (d *Drainer) Drain(ctx context.Context) (DrainStats, error) {
	var stats DrainStats

	for d.maxJobs == 0 || stats.Processed < d.maxJobs {
		if ctx.Err() != nil {
			break
		}

		result, err := d.runner.Run(ctx)
		if err != nil {
			return stats, err
		}
		if result == nil {
			break
		}

		stats.Processed++
		if result.Success {
			stats.Succeeded++
		} else {
			stats.Failed++
		}

		if d.pause > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(d.pause):
			}
		}
	}

	d.logger.InfoContext(ctx, "queue drained",
		logger.Count(int64(stats.Processed)),
		slog.Int("succeeded", stats.Succeeded),
		slog.Int("failed", stats.Failed))

	return stats, nil
}
