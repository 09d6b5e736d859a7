// Package schedule manages crawler job lifecycle: one job per configured
// source URL, executed on a recurring cadence with exponential backoff on
// failure. A guard flag prevents overlapping runs; job state is owned
// exclusively by the scheduler.
package schedule

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/fwojciec/docgraph"
	"github.com/google/uuid"
)

// recentRunWindow bounds the moving average of run durations.
const recentRunWindow = 10

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Scheduler executes configured crawl jobs on a cadence.
type Scheduler struct {
	config docgraph.Config
	runner docgraph.JobRunner
	clock  docgraph.Clock
	logger *slog.Logger
	sleep  func(time.Duration)

	mu        sync.Mutex
	jobs      map[string]*docgraph.CrawlerJob
	running   bool
	lastRun   time.Time
	nextTick  time.Time
	durations []time.Duration

	quit chan struct{}
	wg   sync.WaitGroup
}

// NewScheduler builds one job per configured source entry, all pending.
// The configuration must already be validated.
func NewScheduler(config docgraph.Config, runner docgraph.JobRunner, clock docgraph.Clock, logger *slog.Logger) *Scheduler {
	if clock == nil {
		clock = realClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Scheduler{
		config: config,
		runner: runner,
		clock:  clock,
		logger: logger,
		sleep:  time.Sleep,
		jobs:   make(map[string]*docgraph.CrawlerJob),
		quit:   make(chan struct{}),
	}

	now := clock.Now()
	next, err := NextRun(config.Schedule, now)
	if err != nil {
		logger.Warn("invalid schedule policy, jobs will only run manually", "error", err)
	}
	s.nextTick = next

	for _, src := range config.Sources {
		for _, entry := range src.Entries {
			job := &docgraph.CrawlerJob{
				ID:          uuid.New().String(),
				Source:      src.Name,
				URL:         entry.URL,
				Format:      entry.Format,
				Priority:    entry.Priority,
				Status:      docgraph.JobPending,
				ScheduledAt: now,
				NextRun:     next,
			}
			s.jobs[job.ID] = job
		}
	}
	return s
}

// Start launches the cadence loop. It returns immediately; call Stop to
// shut the loop down.
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(ctx)
	}()
}

// Stop signals the cadence loop and waits for it, bounded by the context.
func (s *Scheduler) Stop(ctx context.Context) error {
	close(s.quit)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return docgraph.Errorf(docgraph.EINTERNAL, "scheduler did not stop before deadline: %v", ctx.Err())
	}
}

func (s *Scheduler) loop(ctx context.Context) {
	for {
		s.mu.Lock()
		next := s.nextTick
		s.mu.Unlock()
		if next.IsZero() {
			// No valid cadence; manual runs only.
			<-s.quit
			return
		}

		wait := time.Until(next)
		if wait < 0 {
			wait = 0
		}
		timer := time.NewTimer(wait)

		select {
		case <-timer.C:
			if err := s.RunDue(ctx); err != nil {
				s.logger.Warn("scheduled run skipped", "error", err)
			}
			s.mu.Lock()
			tick, err := NextRun(s.config.Schedule, s.clock.Now())
			if err == nil {
				s.nextTick = tick
			}
			s.mu.Unlock()
		case <-s.quit:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

// RunDue executes every runnable job once, in priority order. Completed
// jobs are re-armed for the new cadence; failed jobs stay failed until an
// operator re-arms them through RunJobNow or RunSourceJobs. Returns
// ECONFLICT when a run is already in progress.
func (s *Scheduler) RunDue(ctx context.Context) error {
	jobs, err := s.acquire(func(j *docgraph.CrawlerJob) bool {
		return j.Status == docgraph.JobPending || j.Status == docgraph.JobCompleted
	})
	if err != nil {
		return err
	}
	defer s.release()

	s.runAll(ctx, jobs)
	return nil
}

// RunJobNow executes one job immediately, re-arming it first if it
// previously failed.
func (s *Scheduler) RunJobNow(ctx context.Context, id string) error {
	s.mu.Lock()
	job, ok := s.jobs[id]
	if !ok {
		s.mu.Unlock()
		return docgraph.Errorf(docgraph.ENOTFOUND, "job %q not found", id)
	}
	if s.running {
		s.mu.Unlock()
		return docgraph.Errorf(docgraph.ECONFLICT, "a run is already in progress")
	}
	s.running = true
	s.rearm(job)
	s.mu.Unlock()
	defer s.release()

	s.runAll(ctx, []*docgraph.CrawlerJob{job})
	return nil
}

// RunSourceJobs executes all jobs of one source immediately, re-arming
// failed ones.
func (s *Scheduler) RunSourceJobs(ctx context.Context, source string) error {
	jobs, err := s.acquire(func(j *docgraph.CrawlerJob) bool {
		return j.Source == source
	})
	if err != nil {
		return err
	}
	defer s.release()

	if len(jobs) == 0 {
		return docgraph.Errorf(docgraph.ENOTFOUND, "no jobs for source %q", source)
	}
	for _, job := range jobs {
		s.mu.Lock()
		s.rearm(job)
		s.mu.Unlock()
	}
	s.runAll(ctx, jobs)
	return nil
}

// acquire takes the run guard and snapshots the jobs matching the filter,
// sorted by priority then URL.
func (s *Scheduler) acquire(match func(*docgraph.CrawlerJob) bool) ([]*docgraph.CrawlerJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil, docgraph.Errorf(docgraph.ECONFLICT, "a run is already in progress")
	}
	s.running = true

	var jobs []*docgraph.CrawlerJob
	for _, job := range s.jobs {
		if match(job) {
			jobs = append(jobs, job)
		}
	}
	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].Priority != jobs[j].Priority {
			return jobs[i].Priority < jobs[j].Priority
		}
		return jobs[i].URL < jobs[j].URL
	})
	return jobs, nil
}

func (s *Scheduler) release() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// rearm resets a failed job so it can run again. Must be called with mu
// held.
func (s *Scheduler) rearm(job *docgraph.CrawlerJob) {
	if job.Status == docgraph.JobFailed {
		job.Status = docgraph.JobPending
		job.RetryCount = 0
		job.LastError = ""
	}
}

func (s *Scheduler) runAll(ctx context.Context, jobs []*docgraph.CrawlerJob) {
	for _, job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}
		s.runJob(ctx, job)
	}
}

// runJob drives one job to a terminal state for this run: completed, or
// failed after the retry budget is spent. Backoff between attempts grows
// exponentially with the retry count.
func (s *Scheduler) runJob(ctx context.Context, job *docgraph.CrawlerJob) {
	maxRetries := s.config.Retry.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	for {
		s.mu.Lock()
		job.Status = docgraph.JobRunning
		s.mu.Unlock()

		start := s.clock.Now()
		err := s.runner.Run(ctx, job)
		elapsed := s.clock.Now().Sub(start)

		s.mu.Lock()
		s.lastRun = s.clock.Now()
		job.LastRun = s.lastRun
		s.durations = append(s.durations, elapsed)
		if len(s.durations) > recentRunWindow {
			s.durations = s.durations[len(s.durations)-recentRunWindow:]
		}

		if err == nil {
			job.Status = docgraph.JobCompleted
			job.RetryCount = 0
			job.LastError = ""
			// During a scheduled run s.nextTick still points at the tick
			// that fired, so compute the following cadence directly.
			job.NextRun = time.Time{}
			if next, nerr := NextRun(s.config.Schedule, s.clock.Now()); nerr == nil {
				job.NextRun = next
			}
			s.mu.Unlock()
			s.logger.Info("job completed", "job", job.ID, "source", job.Source, "url", job.URL, "duration", elapsed)
			return
		}

		job.RetryCount++
		job.LastError = err.Error()

		if job.RetryCount >= maxRetries || !docgraph.Retryable(err) {
			job.Status = docgraph.JobFailed
			s.mu.Unlock()
			s.logger.Error("job failed", "job", job.ID, "source", job.Source, "url", job.URL, "attempts", job.RetryCount, "error", err)
			return
		}

		delay := Backoff(s.config.Retry, job.RetryCount)
		job.Status = docgraph.JobPending
		job.NextRun = s.clock.Now().Add(delay)
		s.mu.Unlock()
		s.logger.Warn("job attempt failed, retrying", "job", job.ID, "attempt", job.RetryCount, "delay", delay, "error", err)
		s.sleep(delay)
	}
}

// Backoff returns the delay before the attempt following the given retry
// count: RetryDelay scaled by BackoffMultiplier^(retryCount-1).
func Backoff(policy docgraph.RetryPolicy, retryCount int) time.Duration {
	mult := policy.BackoffMultiplier
	if mult < 1 {
		mult = 1
	}
	scale := math.Pow(mult, float64(retryCount-1))
	return time.Duration(float64(policy.RetryDelay) * scale)
}

// Jobs returns a snapshot of all jobs, sorted by source then URL.
func (s *Scheduler) Jobs() []*docgraph.CrawlerJob {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*docgraph.CrawlerJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		clone := *job
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].URL < out[j].URL
	})
	return out
}

// Job returns a snapshot of one job by ID.
func (s *Scheduler) Job(id string) (*docgraph.CrawlerJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, docgraph.Errorf(docgraph.ENOTFOUND, "job %q not found", id)
	}
	clone := *job
	return &clone, nil
}

// Stats summarizes scheduler activity. The average duration covers the
// most recent runs only.
func (s *Scheduler) Stats() docgraph.SchedulerStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := docgraph.SchedulerStats{
		Jobs:     len(s.jobs),
		ByStatus: make(map[string]int),
		NextRun:  s.nextTick,
		LastRun:  s.lastRun,
	}
	for _, job := range s.jobs {
		stats.ByStatus[string(job.Status)]++
	}
	if len(s.durations) > 0 {
		var total time.Duration
		for _, d := range s.durations {
			total += d
		}
		stats.AvgDuration = total / time.Duration(len(s.durations))
	}
	return stats
}
