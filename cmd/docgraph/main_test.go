package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/docgraph/cmd/docgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigJSON = `{
	"sources": [
		{"name": "canvas", "entries": [
			{"url": "https://canvas.example.com/api", "format": "api_reference", "priority": 1}
		]},
		{"name": "quizizz", "entries": [
			{"url": "https://quizizz.example.com/docs", "format": "interactive_reference", "priority": 2}
		]}
	],
	"schedule": {"interval": "daily", "time": "02:00"},
	"retry": {"maxRetries": 2, "retryDelaySeconds": 0, "backoffMultiplier": 2}
}`

// newTestMain builds a Main with a temp config and database.
func newTestMain(t *testing.T) *main.Main {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docgraph.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfigJSON), 0o644))

	m := main.NewMain()
	m.ConfigPath = cfgPath
	m.DBPath = filepath.Join(dir, "test.db")
	return m
}

func TestRun_NoCommand(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	err := m.Run(context.Background(), nil, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "docgraph")
}

func TestRun_Jobs(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"jobs"}, stdout, stderr)
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "https://canvas.example.com/api")
	assert.Contains(t, out, "https://quizizz.example.com/docs")
	assert.Contains(t, out, "pending")
}

func TestRun_Stats(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"stats"}, stdout, stderr)
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "Store:")
	assert.Contains(t, out, "Index:")
	assert.Contains(t, out, "Scheduler: 2 jobs")
}

func TestRun_Patterns(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"patterns"}, stdout, stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Grade passback")
}

func TestRun_SearchEmptyStore(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"search", "anything"}, stdout, stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "No matches.")
}

func TestRun_MissingConfig(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.ConfigPath = filepath.Join(t.TempDir(), "absent.json")
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"stats"}, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "DOCGRAPH_CONFIG")
}
