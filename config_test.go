package docgraph_test

import (
	"testing"

	"github.com/fwojciec/docgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() docgraph.Config {
	return docgraph.Config{
		Sources: []docgraph.SourceConfig{
			{Name: "canvas", Entries: []docgraph.SourceEntry{
				{URL: "https://canvas.example.com/doc/api", Format: docgraph.FormatAPIReference},
			}},
		},
		Schedule: docgraph.SchedulePolicy{Interval: docgraph.IntervalDaily, Time: "02:00"},
		Retry:    docgraph.RetryPolicy{MaxRetries: 3, BackoffMultiplier: 2},
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a valid configuration", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		require.NoError(t, cfg.Validate())
	})

	t.Run("rejects a source without a name", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Sources[0].Name = ""
		assert.Equal(t, docgraph.EINVALID, docgraph.ErrorCode(cfg.Validate()))
	})

	t.Run("rejects an entry without a URL", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Sources[0].Entries[0].URL = ""
		assert.Equal(t, docgraph.EINVALID, docgraph.ErrorCode(cfg.Validate()))
	})

	t.Run("rejects an unknown entry format", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Sources[0].Entries[0].Format = "pdf"
		assert.Equal(t, docgraph.EINVALID, docgraph.ErrorCode(cfg.Validate()))
	})

	t.Run("allows an empty entry format for auto-detection", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Sources[0].Entries[0].Format = ""
		require.NoError(t, cfg.Validate())
	})

	t.Run("rejects an unknown schedule interval", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Schedule.Interval = "fortnightly"
		assert.Equal(t, docgraph.EINVALID, docgraph.ErrorCode(cfg.Validate()))
	})

	t.Run("rejects negative retries", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Retry.MaxRetries = -1
		assert.Equal(t, docgraph.EINVALID, docgraph.ErrorCode(cfg.Validate()))
	})

	t.Run("rejects a backoff multiplier below one", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Retry.BackoffMultiplier = 0.5
		assert.Equal(t, docgraph.EINVALID, docgraph.ErrorCode(cfg.Validate()))
	})
}

func TestRelationship_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a cross-source relationship", func(t *testing.T) {
		t.Parallel()
		r := docgraph.Relationship{SourceAPI: "canvas", TargetAPI: "quizizz", Score: 0.7}
		require.NoError(t, r.Validate())
	})

	t.Run("rejects same-source ends", func(t *testing.T) {
		t.Parallel()
		r := docgraph.Relationship{SourceAPI: "canvas", TargetAPI: "canvas", Score: 0.7}
		assert.Equal(t, docgraph.EINVALID, docgraph.ErrorCode(r.Validate()))
	})

	t.Run("rejects out-of-range scores", func(t *testing.T) {
		t.Parallel()
		r := docgraph.Relationship{SourceAPI: "canvas", TargetAPI: "quizizz", Score: 1.2}
		assert.Equal(t, docgraph.EINVALID, docgraph.ErrorCode(r.Validate()))
	})
}

func TestFormat_Valid(t *testing.T) {
	t.Parallel()

	for _, f := range []docgraph.Format{
		docgraph.FormatAPIReference,
		docgraph.FormatInteractive,
		docgraph.FormatRichText,
		docgraph.FormatVideo,
	} {
		assert.True(t, f.Valid(), "format %s", f)
	}
	assert.False(t, docgraph.Format("pdf").Valid())
	assert.False(t, docgraph.Format("").Valid())
}
