package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"
)

// shutdownTimeout bounds how long an in-flight run may delay shutdown.
const shutdownTimeout = 30 * time.Second

// Run executes the run command: start the scheduler and block until
// interrupted.
func (c *RunCmd) Run(deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(deps.Ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps.Scheduler.Start(ctx)

	stats := deps.Scheduler.Stats()
	fmt.Fprintf(deps.Stdout, "Scheduler started with %d jobs, next run %s\n",
		stats.Jobs, stats.NextRun.Format(time.RFC3339))

	<-ctx.Done()
	fmt.Fprintln(deps.Stdout, "Shutting down...")

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return deps.Scheduler.Stop(stopCtx)
}
