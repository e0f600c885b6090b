// Package httpserver runs the engine's HTTP surface with graceful shutdown.
//
// Server binds its listener synchronously, so address errors surface from
// Run wrapped with ErrStart, and shuts down when the context passed to Run
// is cancelled. Signal handling belongs to the caller:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// LivenessHandler and ReadinessHandler back the /health/live and
// /health/ready probes. Readiness runs named Checks such as pg.Healthcheck
// and redis.Healthcheck and reports each result as JSON.
package httpserver
