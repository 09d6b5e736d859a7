package mock

import (
	"context"

	"github.com/fwojciec/docgraph"
)

var _ docgraph.JobRunner = (*JobRunner)(nil)

// JobRunner is a mock implementation of docgraph.JobRunner.
type JobRunner struct {
	RunFn func(ctx context.Context, job *docgraph.CrawlerJob) error
}

func (r *JobRunner) Run(ctx context.Context, job *docgraph.CrawlerJob) error {
	return r.RunFn(ctx, job)
}
