package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docgraph"
)

// Ensure LoggingRunner implements docgraph.JobRunner.
var _ docgraph.JobRunner = (*LoggingRunner)(nil)

// LoggingRunner wraps a JobRunner with per-job logging.
type LoggingRunner struct {
	next   docgraph.JobRunner
	logger *slog.Logger
}

// NewLoggingRunner creates a new LoggingRunner.
func NewLoggingRunner(next docgraph.JobRunner, logger *slog.Logger) *LoggingRunner {
	return &LoggingRunner{next: next, logger: logger}
}

// Run delegates to the wrapped runner and logs the outcome.
func (r *LoggingRunner) Run(ctx context.Context, job *docgraph.CrawlerJob) error {
	begin := time.Now()
	err := r.next.Run(ctx, job)
	if err != nil {
		r.logger.Error("job run",
			"job", job.ID,
			"source", job.Source,
			"url", job.URL,
			"duration", time.Since(begin),
			"err", err,
		)
		return err
	}
	r.logger.Info("job run",
		"job", job.ID,
		"source", job.Source,
		"url", job.URL,
		"duration", time.Since(begin),
	)
	return nil
}
