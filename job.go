package docgraph

import (
	"context"
	"time"
)

// JobStatus is the lifecycle state of a CrawlerJob.
type JobStatus string

// Job lifecycle states. A failed job is terminal until an operator re-arms
// it through a manual run.
const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// CrawlerJob tracks the crawl lifecycle of one configured source URL.
// Jobs are created once at scheduler construction and are mutated only by
// the scheduler; they are never deleted during normal operation.
type CrawlerJob struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	URL      string `json:"url"`
	Format   Format `json:"format"`
	Priority int    `json:"priority"`

	Status      JobStatus `json:"status"`
	ScheduledAt time.Time `json:"scheduledAt"`
	LastRun     time.Time `json:"lastRun,omitzero"`
	NextRun     time.Time `json:"nextRun,omitzero"`
	RetryCount  int       `json:"retryCount"`
	LastError   string    `json:"lastError,omitempty"`
}

// JobRunner executes the crawl pipeline for one job. The scheduler owns
// job state transitions; the runner only fetches, stores, and indexes.
type JobRunner interface {
	Run(ctx context.Context, job *CrawlerJob) error
}

// SchedulerStats summarizes scheduler activity.
type SchedulerStats struct {
	Jobs        int            `json:"jobs"`
	ByStatus    map[string]int `json:"byStatus"`
	NextRun     time.Time      `json:"nextRun,omitzero"`
	LastRun     time.Time      `json:"lastRun,omitzero"`
	AvgDuration time.Duration  `json:"avgDuration"`
}

// Clock abstracts time for the scheduler so tests can control it.
type Clock interface {
	Now() time.Time
}
