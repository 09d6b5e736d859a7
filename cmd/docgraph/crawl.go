package main

import (
	"fmt"

	"github.com/fwojciec/docgraph"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	if err := deps.Scheduler.RunSourceJobs(deps.Ctx, c.Source); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docgraph.ErrorMessage(err))
		return err
	}

	for _, job := range deps.Scheduler.Jobs() {
		if job.Source != c.Source {
			continue
		}
		status := string(job.Status)
		if job.LastError != "" {
			status += " (" + job.LastError + ")"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", job.ID, job.URL, status)
	}

	return nil
}
