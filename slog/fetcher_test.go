package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/docgraph"
	"github.com/fwojciec/docgraph/mock"
	docslog "github.com/fwojciec/docgraph/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newLogger returns a text logger writing into the returned buffer.
func newLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestLoggingFetcher(t *testing.T) {
	t.Parallel()

	t.Run("passes the page through and logs its size", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		page := "<html><body>Canvas API docs</body></html>"
		fetcher := docslog.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return page, nil
			},
		}, logger)

		html, err := fetcher.Fetch(context.Background(), "https://canvas.example.com/doc/api")

		require.NoError(t, err)
		assert.Equal(t, page, html)
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "url=https://canvas.example.com/doc/api")
		assert.Contains(t, buf.String(), "bytes=41")
		assert.Contains(t, buf.String(), "duration=")
	})

	t.Run("surfaces fetch failures at error level", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		fetcher := docslog.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "", docgraph.Errorf(docgraph.EUNAVAILABLE, "fetch %s: connection reset", url)
			},
		}, logger)

		_, err := fetcher.Fetch(context.Background(), "https://quizizz.example.com/docs")

		require.Error(t, err)
		assert.Equal(t, docgraph.EUNAVAILABLE, docgraph.ErrorCode(err))
		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "connection reset")
	})

	t.Run("close reaches the wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		logger, _ := newLogger()
		closed := false
		fetcher := docslog.NewLoggingFetcher(&mock.Fetcher{
			CloseFn: func() error {
				closed = true
				return nil
			},
		}, logger)

		require.NoError(t, fetcher.Close())
		assert.True(t, closed)
	})
}
