package main

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kultapp/jobengine/internal/app"
	"github.com/kultapp/jobengine/pkg/config"
	"github.com/kultapp/jobengine/pkg/logger"
)

// cli carries the state shared by every subcommand.
type cli struct {
	cfg app.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "jobctl",
		Short: "Operate the background job engine",
		Long: `jobctl runs and inspects the background job queue without the HTTP trigger.

Examples:
  jobctl run-once                                  # Process at most one job
  jobctl drain --max 50                            # Process jobs until the queue is empty
  jobctl enqueue generate_matches --user <uuid>    # Queue a job for a user
  jobctl enqueue cleanup_stale --delay 1h          # Queue a delayed maintenance job
  jobctl migrate                                   # Apply the queue schema`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Load(&c.cfg); err != nil {
				return err
			}
			c.log = app.NewLogger(c.cfg, logger.WithOutput(cmd.ErrOrStderr()))
			return nil
		},
	}

	root.AddCommand(
		c.runOnceCmd(),
		c.drainCmd(),
		c.enqueueCmd(),
		c.migrateCmd(),
	)

	return root
}

// withEngine opens the engine for the duration of fn.
func (c *cli) withEngine(ctx context.Context, fn func(*app.Engine) error) error {
	engine, err := app.Open(ctx, c.cfg, c.log)
	if err != nil {
		return err
	}
	defer func() {
		if err := engine.Close(); err != nil {
			c.log.ErrorContext(ctx, "failed to close engine", logger.Error(err))
		}
	}()

	return fn(engine)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
