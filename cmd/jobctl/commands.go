package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/kultapp/jobengine/internal/app"
	"github.com/kultapp/jobengine/pkg/queue"
)

type noJobs struct {
	Message string `json:"message"`
}

func (c *cli) runOnceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run-once",
		Short: "Claim and process at most one job",
		Long:  "Claims the next pending job, runs its handler, records the outcome and prints the result as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withEngine(cmd.Context(), func(e *app.Engine) error {
				runner := e.Runner()
				if runner == nil {
					return app.ErrStoreNotConfigured
				}

				result, err := runner.Run(cmd.Context())
				if err != nil {
					return err
				}
				if result == nil {
					return printJSON(cmd, noJobs{Message: "No pending jobs"})
				}
				return printJSON(cmd, result)
			})
		},
	}
}

func (c *cli) drainCmd() *cobra.Command {
	var (
		maxJobs int
		pause   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "drain",
		Short: "Process jobs one at a time until the queue is empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withEngine(cmd.Context(), func(e *app.Engine) error {
				runner := e.Runner()
				if runner == nil {
					return app.ErrStoreNotConfigured
				}

				d, err := queue.NewDrainer(runner,
					queue.WithMaxJobs(maxJobs),
					queue.WithPause(pause),
					queue.WithDrainerLogger(c.log))
				if err != nil {
					return err
				}

				stats, err := d.Drain(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, stats)
			})
		},
	}

	cmd.Flags().IntVar(&maxJobs, "max", 100, "Maximum number of jobs to process, 0 for no limit")
	cmd.Flags().DurationVar(&pause, "pause", 0, "Wait between jobs")

	return cmd
}

type enqueued struct {
	JobID   string        `json:"job_id"`
	JobType queue.JobType `json:"job_type"`
}

func (c *cli) enqueueCmd() *cobra.Command {
	var (
		userID   string
		delay    time.Duration
		priority int16
	)

	cmd := &cobra.Command{
		Use:       "enqueue <type>",
		Short:     "Add a pending job to the queue",
		Long:      "Adds a pending job. generate_matches and update_embeddings require --user.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: jobTypeNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobType := queue.JobType(args[0])
			if !jobType.Valid() {
				return queue.ErrUnknownJobType
			}
			if jobType.RequiresUser() && userID == "" {
				return queue.ErrTargetUserRequired
			}

			return c.withEngine(cmd.Context(), func(e *app.Engine) error {
				if e.Enqueuer == nil {
					return app.ErrStoreNotConfigured
				}

				id, err := e.Enqueuer.Enqueue(cmd.Context(), jobType,
					queue.WithTargetUser(userID),
					queue.WithDelay(delay),
					queue.WithPriority(queue.Priority(priority)))
				if err != nil {
					return err
				}
				return printJSON(cmd, enqueued{JobID: id, JobType: jobType})
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Target user id for user-scoped jobs")
	cmd.Flags().DurationVar(&delay, "delay", 0, "Postpone the job")
	cmd.Flags().Int16Var(&priority, "priority", int16(queue.PriorityDefault), "Job priority, higher runs first")

	return cmd
}

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withEngine(cmd.Context(), func(e *app.Engine) error {
				if err := e.Migrate(cmd.Context()); err != nil {
					return err
				}
				c.log.InfoContext(cmd.Context(), "migrations applied")
				return nil
			})
		},
	}
}

func jobTypeNames() []string {
	types := queue.JobTypes()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.String())
	}
	return names
}
