package schedule

import (
	"fmt"
	"time"

	"github.com/fwojciec/docgraph"
	"github.com/robfig/cron/v3"
)

// cronSpec translates a daily or weekly schedule policy into a standard
// five-field cron expression. The policy time is "HH:MM" in UTC.
func cronSpec(policy docgraph.SchedulePolicy) (string, error) {
	hour, minute, err := parseClock(policy.Time)
	if err != nil {
		return "", err
	}

	switch policy.Interval {
	case docgraph.IntervalDaily, "":
		return fmt.Sprintf("%d %d * * *", minute, hour), nil
	case docgraph.IntervalWeekly:
		return fmt.Sprintf("%d %d * * 0", minute, hour), nil
	}
	return "", docgraph.Errorf(docgraph.EINVALID, "unknown schedule interval %q", policy.Interval)
}

// NextRun computes the first run time strictly after the given instant.
// Hourly cadences are interval-based, one hour from the reference time,
// and ignore the policy's clock time. Daily and weekly cadences run at
// the configured "HH:MM" wall clock in UTC.
func NextRun(policy docgraph.SchedulePolicy, after time.Time) (time.Time, error) {
	if policy.Interval == docgraph.IntervalHourly {
		return cron.Every(time.Hour).Next(after.UTC()), nil
	}
	spec, err := cronSpec(policy)
	if err != nil {
		return time.Time{}, err
	}
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return time.Time{}, docgraph.Errorf(docgraph.EINVALID, "invalid schedule: %v", err)
	}
	return sched.Next(after.UTC()), nil
}

// parseClock parses an "HH:MM" string. An empty string means midnight.
func parseClock(s string) (hour, minute int, err error) {
	if s == "" {
		return 0, 0, nil
	}
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, docgraph.Errorf(docgraph.EINVALID, "invalid schedule time %q, want HH:MM", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, docgraph.Errorf(docgraph.EINVALID, "schedule time %q out of range", s)
	}
	return hour, minute, nil
}
