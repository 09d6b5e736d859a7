package main

import (
	"fmt"
	"time"
)

// Run executes the jobs command.
func (c *JobsCmd) Run(deps *Dependencies) error {
	jobs := deps.Scheduler.Jobs()
	if len(jobs) == 0 {
		fmt.Fprintln(deps.Stdout, "No jobs configured. Add sources to the configuration file.")
		return nil
	}

	for _, job := range jobs {
		next := "-"
		if !job.NextRun.IsZero() {
			next = job.NextRun.Format(time.RFC3339)
		}
		fmt.Fprintf(deps.Stdout, "%s  %-10s  p%d  %-9s  next=%s  %s\n",
			job.ID, job.Source, job.Priority, job.Status, next, job.URL)
		if job.LastError != "" {
			fmt.Fprintf(deps.Stdout, "    last error: %s\n", job.LastError)
		}
	}

	return nil
}
