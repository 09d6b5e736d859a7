package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fwojciec/docgraph"
)

// fileConfig is the JSON shape of the configuration file. Durations are
// given in seconds so the file stays readable.
type fileConfig struct {
	Sources  []docgraph.SourceConfig `json:"sources"`
	Schedule docgraph.SchedulePolicy `json:"schedule"`
	Retry    *fileRetry              `json:"retry,omitempty"`
	Rate     *fileRate               `json:"rateLimit,omitempty"`
	Timeout  int                     `json:"fetchTimeoutSeconds,omitempty"`
}

type fileRetry struct {
	MaxRetries        int     `json:"maxRetries"`
	RetryDelaySeconds float64 `json:"retryDelaySeconds"`
	BackoffMultiplier float64 `json:"backoffMultiplier"`
}

type fileRate struct {
	RequestsPerMinute          int `json:"requestsPerMinute"`
	DelayBetweenRequestsMillis int `json:"delayBetweenRequestsMillis"`
}

// loadConfig reads and validates the configuration file.
func loadConfig(path string) (*docgraph.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}

	cfg := defaultConfig()
	cfg.Sources = fc.Sources
	if fc.Schedule.Interval != "" {
		cfg.Schedule = fc.Schedule
	}
	if fc.Retry != nil {
		cfg.Retry = docgraph.RetryPolicy{
			MaxRetries:        fc.Retry.MaxRetries,
			RetryDelay:        time.Duration(fc.Retry.RetryDelaySeconds * float64(time.Second)),
			BackoffMultiplier: fc.Retry.BackoffMultiplier,
		}
	}
	if fc.Rate != nil {
		cfg.RateLimit = docgraph.RateLimitPolicy{
			RequestsPerMinute:    fc.Rate.RequestsPerMinute,
			DelayBetweenRequests: time.Duration(fc.Rate.DelayBetweenRequestsMillis) * time.Millisecond,
		}
	}
	if fc.Timeout > 0 {
		cfg.FetchTimeout = time.Duration(fc.Timeout) * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

// defaultConfig is used when the file omits optional sections.
func defaultConfig() *docgraph.Config {
	return &docgraph.Config{
		Schedule: docgraph.SchedulePolicy{Interval: docgraph.IntervalDaily, Time: "02:00"},
		Retry: docgraph.RetryPolicy{
			MaxRetries:        3,
			RetryDelay:        5 * time.Second,
			BackoffMultiplier: 2,
		},
		RateLimit: docgraph.RateLimitPolicy{
			DelayBetweenRequests: 2 * time.Second,
		},
		FetchTimeout: 30 * time.Second,
	}
}
