package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/docgraph"
	"github.com/fwojciec/docgraph/crawl"
	"github.com/fwojciec/docgraph/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthroughRegistry returns the same extractor for every format.
func passthroughRegistry(e docgraph.ContentExtractor) docgraph.ExtractorRegistry {
	return &mock.ExtractorRegistry{
		GetFn: func(_ docgraph.Format) docgraph.ContentExtractor { return e },
	}
}

func TestCrawler_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("fetches, extracts, and stamps the result", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return "<html><body>docs</body></html>", nil
				},
			},
			Extractors: passthroughRegistry(&mock.ContentExtractor{
				ExtractFn: func(html, url string) (*docgraph.CrawledContent, error) {
					return &docgraph.CrawledContent{Title: "Docs", Text: "docs"}, nil
				},
			}),
			Retry: docgraph.RetryPolicy{MaxRetries: 1},
		}

		content, err := c.Fetch(context.Background(), "https://example.com/api/reference")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/api/reference", content.URL)
		assert.Equal(t, docgraph.FormatAPIReference, content.Format)
		assert.Equal(t, "Docs", content.Title)
		assert.False(t, content.FetchedAt.IsZero())
	})

	t.Run("retries transient fetch failures", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					attempts++
					if attempts < 3 {
						return "", docgraph.Errorf(docgraph.EUNAVAILABLE, "connection reset")
					}
					return "<html></html>", nil
				},
			},
			Extractors: passthroughRegistry(&mock.ContentExtractor{
				ExtractFn: func(html, url string) (*docgraph.CrawledContent, error) {
					return &docgraph.CrawledContent{Text: "ok"}, nil
				},
			}),
			Retry: docgraph.RetryPolicy{MaxRetries: 3, RetryDelay: 0},
		}

		content, err := c.Fetch(context.Background(), "https://example.com/api")

		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
		assert.Equal(t, "ok", content.Text)
	})

	t.Run("gives up after the retry budget", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					attempts++
					return "", docgraph.Errorf(docgraph.EUNAVAILABLE, "timeout")
				},
			},
			Extractors: passthroughRegistry(&mock.ContentExtractor{}),
			Retry:      docgraph.RetryPolicy{MaxRetries: 3, RetryDelay: 0},
		}

		_, err := c.Fetch(context.Background(), "https://example.com/api")

		require.Error(t, err)
		assert.Equal(t, 3, attempts)
		assert.Equal(t, docgraph.EUNAVAILABLE, docgraph.ErrorCode(err))
	})

	t.Run("preserves classified fetch errors without retrying", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					attempts++
					return "", docgraph.Errorf(docgraph.ENOTFOUND, "fetch %s: HTTP 404", url)
				},
			},
			Extractors: passthroughRegistry(&mock.ContentExtractor{}),
			Retry:      docgraph.RetryPolicy{MaxRetries: 3, RetryDelay: 0},
		}

		_, err := c.Fetch(context.Background(), "https://example.com/api")

		require.Error(t, err)
		assert.Equal(t, 1, attempts)
		assert.Equal(t, docgraph.ENOTFOUND, docgraph.ErrorCode(err))
	})

	t.Run("wraps unclassified fetch errors as transient", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					attempts++
					return "", assert.AnError
				},
			},
			Extractors: passthroughRegistry(&mock.ContentExtractor{}),
			Retry:      docgraph.RetryPolicy{MaxRetries: 2, RetryDelay: 0},
		}

		_, err := c.Fetch(context.Background(), "https://example.com/api")

		require.Error(t, err)
		assert.Equal(t, 2, attempts)
		assert.Equal(t, docgraph.EUNAVAILABLE, docgraph.ErrorCode(err))
	})

	t.Run("does not retry extraction failures", func(t *testing.T) {
		t.Parallel()

		extractions := 0
		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return "<html></html>", nil
				},
			},
			Extractors: passthroughRegistry(&mock.ContentExtractor{
				ExtractFn: func(html, url string) (*docgraph.CrawledContent, error) {
					extractions++
					return nil, docgraph.Errorf(docgraph.EPARSE, "unexpected markup")
				},
			}),
			Retry: docgraph.RetryPolicy{MaxRetries: 3, RetryDelay: 0},
		}

		_, err := c.Fetch(context.Background(), "https://example.com/api")

		require.Error(t, err)
		assert.Equal(t, 1, extractions)
		assert.Equal(t, docgraph.EPARSE, docgraph.ErrorCode(err))
	})

	t.Run("waits on the limiter before fetching", func(t *testing.T) {
		t.Parallel()

		var order []string
		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					order = append(order, "fetch")
					return "<html></html>", nil
				},
			},
			Extractors: passthroughRegistry(&mock.ContentExtractor{
				ExtractFn: func(html, url string) (*docgraph.CrawledContent, error) {
					return &docgraph.CrawledContent{}, nil
				},
			}),
			Limiter: &mock.Limiter{
				WaitFn: func(_ context.Context) error {
					order = append(order, "wait")
					return nil
				},
			},
			Retry: docgraph.RetryPolicy{MaxRetries: 1},
		}

		_, err := c.Fetch(context.Background(), "https://example.com/api")

		require.NoError(t, err)
		assert.Equal(t, []string{"wait", "fetch"}, order)
	})

	t.Run("FetchAs overrides URL-based detection", func(t *testing.T) {
		t.Parallel()

		var gotFormat docgraph.Format
		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return "<html></html>", nil
				},
			},
			Extractors: &mock.ExtractorRegistry{
				GetFn: func(format docgraph.Format) docgraph.ContentExtractor {
					gotFormat = format
					return &mock.ContentExtractor{
						ExtractFn: func(html, url string) (*docgraph.CrawledContent, error) {
							return &docgraph.CrawledContent{}, nil
						},
					}
				},
			},
			Retry: docgraph.RetryPolicy{MaxRetries: 1},
		}

		content, err := c.FetchAs(context.Background(), "https://example.com/api", docgraph.FormatVideo)

		require.NoError(t, err)
		assert.Equal(t, docgraph.FormatVideo, gotFormat)
		assert.Equal(t, docgraph.FormatVideo, content.Format)
	})
}

func TestCrawler_FetchMany(t *testing.T) {
	t.Parallel()

	t.Run("collects successes and skips failures", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if url == "https://example.com/bad" {
						return "", docgraph.Errorf(docgraph.EUNAVAILABLE, "boom")
					}
					return "<html></html>", nil
				},
			},
			Extractors: passthroughRegistry(&mock.ContentExtractor{
				ExtractFn: func(html, url string) (*docgraph.CrawledContent, error) {
					return &docgraph.CrawledContent{}, nil
				},
			}),
			Retry: docgraph.RetryPolicy{MaxRetries: 1},
		}

		contents, err := c.FetchMany(context.Background(), []string{
			"https://example.com/a",
			"https://example.com/bad",
			"https://example.com/b",
		})

		require.NoError(t, err)
		assert.Len(t, contents, 2)
	})

	t.Run("fetches duplicate URLs only once", func(t *testing.T) {
		t.Parallel()

		fetches := 0
		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					fetches++
					return "<html></html>", nil
				},
			},
			Extractors: passthroughRegistry(&mock.ContentExtractor{
				ExtractFn: func(html, url string) (*docgraph.CrawledContent, error) {
					return &docgraph.CrawledContent{}, nil
				},
			}),
			Retry: docgraph.RetryPolicy{MaxRetries: 1},
		}

		contents, err := c.FetchMany(context.Background(), []string{
			"https://example.com/a",
			"https://example.com/a",
			"https://example.com/a",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, fetches)
		assert.Len(t, contents, 1)
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := &crawl.Crawler{
			Fetcher:    &mock.Fetcher{},
			Extractors: passthroughRegistry(&mock.ContentExtractor{}),
		}

		_, err := c.FetchMany(ctx, []string{"https://example.com/a"})
		require.Error(t, err)
	})
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want docgraph.Format
	}{
		{"https://developers.example.com/api/reference", docgraph.FormatAPIReference},
		{"https://example.com/swagger/index.html", docgraph.FormatInteractive},
		{"https://example.com/api-explorer", docgraph.FormatInteractive},
		{"https://docs.example.com/guides/getting-started", docgraph.FormatRichText},
		{"https://support.example.com/hc/articles", docgraph.FormatRichText},
		{"https://www.youtube.com/watch?v=abc123", docgraph.FormatVideo},
		{"https://vimeo.com/12345", docgraph.FormatVideo},
		{"https://example.com/videos/intro", docgraph.FormatVideo},
		{"://not-a-url", docgraph.FormatAPIReference},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, crawl.DetectFormat(tt.url))
		})
	}
}

func TestWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("sleeps longer on each attempt", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		begin := time.Now()
		_, err := crawl.WithRetry(context.Background(),
			docgraph.RetryPolicy{MaxRetries: 3, RetryDelay: 10 * time.Millisecond},
			nil,
			func(_ context.Context) (*docgraph.CrawledContent, error) {
				attempts++
				return nil, docgraph.Errorf(docgraph.EUNAVAILABLE, "down")
			})

		require.Error(t, err)
		assert.Equal(t, 3, attempts)
		// Delays: 10ms after attempt 1, 20ms after attempt 2.
		assert.GreaterOrEqual(t, time.Since(begin), 30*time.Millisecond)
	})

	t.Run("honors context cancellation between attempts", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := crawl.WithRetry(ctx,
			docgraph.RetryPolicy{MaxRetries: 3, RetryDelay: time.Minute},
			nil,
			func(_ context.Context) (*docgraph.CrawledContent, error) {
				return nil, docgraph.Errorf(docgraph.EUNAVAILABLE, "down")
			})

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestLimiter(t *testing.T) {
	t.Parallel()

	t.Run("spaces consecutive waits", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewLimiter(docgraph.RateLimitPolicy{DelayBetweenRequests: 20 * time.Millisecond})

		begin := time.Now()
		for range 3 {
			require.NoError(t, l.Wait(context.Background()))
		}
		assert.GreaterOrEqual(t, time.Since(begin), 40*time.Millisecond)
	})

	t.Run("derives spacing from requests per minute", func(t *testing.T) {
		t.Parallel()

		// 1200 requests per minute = 50ms spacing.
		l := crawl.NewLimiter(docgraph.RateLimitPolicy{RequestsPerMinute: 1200})

		begin := time.Now()
		require.NoError(t, l.Wait(context.Background()))
		require.NoError(t, l.Wait(context.Background()))
		assert.GreaterOrEqual(t, time.Since(begin), 50*time.Millisecond)
	})

	t.Run("zero policy never blocks", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewLimiter(docgraph.RateLimitPolicy{})

		begin := time.Now()
		for range 100 {
			require.NoError(t, l.Wait(context.Background()))
		}
		assert.Less(t, time.Since(begin), 100*time.Millisecond)
	})
}
