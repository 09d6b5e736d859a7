package docgraph

import (
	"time"
)

// SourceEntry is one URL to crawl for a logical source. Lower priority
// values run first within a scheduled run.
type SourceEntry struct {
	URL      string `json:"url"`
	Format   Format `json:"format"`
	Priority int    `json:"priority"`
}

// SourceConfig groups the crawl entries of one logical source under its
// source identifier (e.g. "api").
type SourceConfig struct {
	Name    string        `json:"name"`
	Entries []SourceEntry `json:"entries"`
}

// Interval is the cadence at which scheduled runs occur.
type Interval string

// Supported cadence intervals.
const (
	IntervalHourly Interval = "hourly"
	IntervalDaily  Interval = "daily"
	IntervalWeekly Interval = "weekly"
)

// SchedulePolicy controls when scheduled runs occur. Time is an "HH:MM"
// string interpreted in UTC; it applies to daily and weekly intervals.
type SchedulePolicy struct {
	Interval Interval `json:"interval"`
	Time     string   `json:"time,omitempty"`
}

// RetryPolicy controls retry behavior. The fetcher applies linear backoff
// on the attempt number; the scheduler applies exponential backoff on the
// job's retry count using BackoffMultiplier.
type RetryPolicy struct {
	MaxRetries        int           `json:"maxRetries"`
	RetryDelay        time.Duration `json:"retryDelay"`
	BackoffMultiplier float64       `json:"backoffMultiplier"`
}

// RateLimitPolicy controls outbound fetch spacing.
type RateLimitPolicy struct {
	RequestsPerMinute    int           `json:"requestsPerMinute"`
	DelayBetweenRequests time.Duration `json:"delayBetweenRequests"`
}

// Config is the configuration consumed by the core. It originates from an
// external loader; the core only validates and applies it.
type Config struct {
	Sources      []SourceConfig  `json:"sources"`
	Schedule     SchedulePolicy  `json:"schedule"`
	Retry        RetryPolicy     `json:"retry"`
	RateLimit    RateLimitPolicy `json:"rateLimit"`
	FetchTimeout time.Duration   `json:"fetchTimeout"`
}

// Validate returns an error if the configuration is inconsistent.
func (c *Config) Validate() error {
	for _, src := range c.Sources {
		if src.Name == "" {
			return Errorf(EINVALID, "source name required")
		}
		for _, e := range src.Entries {
			if e.URL == "" {
				return Errorf(EINVALID, "source %q has an entry without a URL", src.Name)
			}
			if e.Format != "" && !e.Format.Valid() {
				return Errorf(EINVALID, "source %q entry %q has unknown format %q", src.Name, e.URL, e.Format)
			}
		}
	}
	switch c.Schedule.Interval {
	case IntervalHourly, IntervalDaily, IntervalWeekly, "":
	default:
		return Errorf(EINVALID, "unknown schedule interval %q", c.Schedule.Interval)
	}
	if c.Retry.MaxRetries < 0 {
		return Errorf(EINVALID, "maxRetries must be non-negative")
	}
	if c.Retry.BackoffMultiplier < 1 && c.Retry.BackoffMultiplier != 0 {
		return Errorf(EINVALID, "backoffMultiplier must be >= 1")
	}
	if c.RateLimit.DelayBetweenRequests < 0 {
		return Errorf(EINVALID, "delayBetweenRequests must be non-negative")
	}
	return nil
}
