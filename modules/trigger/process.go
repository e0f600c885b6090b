package trigger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kultapp/jobengine/handler"
	"github.com/kultapp/jobengine/pkg/logger"
	"github.com/kultapp/jobengine/pkg/queue"
)

// Runner processes at most one job per call. *queue.Dispatcher implements it.
type Runner interface {
	Run(ctx context.Context) (*queue.Result, error)
}

type noJobsResponse struct {
	Message string `json:"message"`
}

func process(runner Runner, log *slog.Logger) handler.HandlerFunc[handler.Context, struct{}] {
	return func(ctx handler.Context, _ struct{}) handler.Response {
		if runner == nil {
			log.ErrorContext(ctx, "job engine is not configured, set DATABASE_URL")
			return handler.JSONError(ErrServerMisconfigured)
		}

		result, err := runner.Run(ctx)
		if err != nil {
			log.ErrorContext(ctx, "error fetching job", logger.Error(err))
			return handler.JSONError(ErrFailedToFetchJob)
		}
		if result == nil {
			return handler.JSON(noJobsResponse{Message: "No pending jobs"})
		}

		return handler.JSON(result)
	}
}

// recoverer turns a panic anywhere below it into a 500 response.
func recoverer(log *slog.Logger) handler.Decorator[handler.Context, struct{}] {
	return func(next handler.HandlerFunc[handler.Context, struct{}]) handler.HandlerFunc[handler.Context, struct{}] {
		return func(ctx handler.Context, req struct{}) (resp handler.Response) {
			defer func() {
				if r := recover(); r != nil {
					log.ErrorContext(ctx, "unexpected error", logger.Error(fmt.Errorf("panic: %v", r)))
					resp = handler.JSONError(handler.ErrInternal)
				}
			}()
			return next(ctx, req)
		}
	}
}
