// Package jobs implements the four background job handlers and the
// database access they need.
//
// Service exposes one method per job type and Handlers() packages them for
// queue.NewRegistry:
//
//	repo, _ := jobs.NewRepository(db)
//	svc, _ := jobs.New(repo, jobs.WithEmbedder(vec), jobs.WithLogger(log))
//	registry, err := queue.NewRegistry(svc.Handlers())
//
// Handlers log store failures and report them as an unsuccessful run; only
// programming errors surface as Go errors.
package jobs
