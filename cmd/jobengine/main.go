package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kultapp/jobengine/internal/app"
	"github.com/kultapp/jobengine/modules/trigger"
	"github.com/kultapp/jobengine/pkg/config"
	"github.com/kultapp/jobengine/pkg/httpserver"
	"github.com/kultapp/jobengine/pkg/jwt"
	"github.com/kultapp/jobengine/pkg/logger"
)

func main() {
	var (
		appCfg     app.Config
		httpCfg    httpserver.Config
		triggerCfg trigger.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&triggerCfg)

	log := app.NewLogger(appCfg, logger.WithContextExtractors(trigger.RequestIDExtractor))
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, appCfg, httpCfg, triggerCfg, log); err != nil {
		log.Error("job engine stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg app.Config, httpCfg httpserver.Config, triggerCfg trigger.Config, log *slog.Logger) error {
	engine, err := app.Open(ctx, appCfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := engine.Close(); err != nil {
			log.Error("failed to close engine", logger.Error(err))
		}
	}()

	opts := []trigger.Option{trigger.WithLogger(log)}
	if triggerCfg.JWTSecret != "" {
		verifier, err := jwt.NewFromString(triggerCfg.JWTSecret, jwt.WithAudience(triggerCfg.JWTAudience))
		if err != nil {
			return err
		}
		opts = append(opts, trigger.WithTokenVerifier(verifier))
	}

	r := chi.NewRouter()
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, 5*time.Second, engine.Checks()...))
	r.Mount("/", trigger.NewService(triggerCfg, engine.Runner(), opts...).Handle())

	server := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))

	return server.Run(ctx, r)
}
