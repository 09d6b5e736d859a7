// Package crawl provides the content fetching pipeline. It coordinates
// rate limiting, browser/HTTP fetching, per-format extraction, and retry
// handling for a fixed set of configured source URLs.
package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docgraph"
	"github.com/fwojciec/docgraph/bloom"
)

// Crawler turns source URLs into structured CrawledContent.
type Crawler struct {
	Fetcher    docgraph.Fetcher
	Extractors docgraph.ExtractorRegistry
	Limiter    docgraph.Limiter
	Retry      docgraph.RetryPolicy
	Timeout    time.Duration
	Logger     *slog.Logger
}

// Fetch retrieves and extracts a single URL. The format is detected from
// the URL once; extraction failures are not retried, transient fetch
// failures are retried per the crawler's retry policy.
func (c *Crawler) Fetch(ctx context.Context, url string) (*docgraph.CrawledContent, error) {
	return c.FetchAs(ctx, url, DetectFormat(url))
}

// FetchAs retrieves and extracts a single URL with an explicit format,
// bypassing URL-based detection.
func (c *Crawler) FetchAs(ctx context.Context, url string, format docgraph.Format) (*docgraph.CrawledContent, error) {
	extractor := c.Extractors.Get(format)

	return WithRetry(ctx, c.Retry, c.Logger, func(ctx context.Context) (*docgraph.CrawledContent, error) {
		return c.fetchOnce(ctx, url, format, extractor)
	})
}

// fetchOnce performs one rate-limited fetch attempt followed by extraction.
func (c *Crawler) fetchOnce(ctx context.Context, url string, format docgraph.Format, extractor docgraph.ContentExtractor) (*docgraph.CrawledContent, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	fctx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	html, err := c.Fetcher.Fetch(fctx, url)
	if err != nil {
		// Fetchers that classify their failures keep their code; anything
		// unclassified is treated as transient.
		if docgraph.ErrorCode(err) != docgraph.EINTERNAL {
			return nil, err
		}
		return nil, docgraph.Errorf(docgraph.EUNAVAILABLE, "fetch %s: %v", url, err)
	}

	content, err := extractor.Extract(html, url)
	if err != nil {
		return nil, err
	}

	content.URL = url
	content.Format = format
	content.FetchedAt = time.Now().UTC()

	return content, nil
}

// FetchMany fetches URLs sequentially, collecting successes. Individual
// failures are logged and skipped; one bad URL never aborts the batch.
// Duplicate URLs within the batch are fetched only once.
func (c *Crawler) FetchMany(ctx context.Context, urls []string) ([]*docgraph.CrawledContent, error) {
	seen := bloom.NewFilter(uint(len(urls))+64, 0.001)

	var contents []*docgraph.CrawledContent
	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return contents, err
		}
		if seen.Test(url) {
			continue
		}
		seen.Add(url)

		content, err := c.Fetch(ctx, url)
		if err != nil {
			c.logger().Warn("fetch failed",
				"url", url,
				"error", err,
			)
			continue
		}
		contents = append(contents, content)
	}

	return contents, nil
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
