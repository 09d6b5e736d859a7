// Package http provides a plain-HTTP implementation of docgraph.Fetcher
// for sources that serve fully rendered HTML without JavaScript. It is
// the lightweight alternative to the rod browser fetcher and classifies
// response statuses into application error codes so the crawler can tell
// transient failures from terminal ones.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/docgraph"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with the browser fetcher's navigation timeout.
const DefaultFetchTimeout = 10 * time.Second

// userAgent identifies the crawler to origin servers.
const userAgent = "docgraph/1.0"

// Ensure Fetcher implements docgraph.Fetcher at compile time.
var _ docgraph.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript and is suitable
// for static sites only.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL. Failures carry an
// application error code: transport errors, throttling, and server errors
// are EUNAVAILABLE and worth retrying; a missing page is ENOTFOUND; every
// other client error is EINVALID and terminal.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", docgraph.Errorf(docgraph.EINVALID, "build request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		// DNS failures, refused connections, and timeouts are transient.
		return "", docgraph.Errorf(docgraph.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if code := classify(resp.StatusCode); code != "" {
		return "", docgraph.Errorf(code, "fetch %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", docgraph.Errorf(docgraph.EUNAVAILABLE, "read %s: %v", url, err)
	}

	return string(body), nil
}

// classify maps a response status to an application error code, or ""
// when the status indicates success.
func classify(status int) string {
	switch {
	case status >= 200 && status < 300:
		return ""
	case status == http.StatusTooManyRequests || status >= 500:
		return docgraph.EUNAVAILABLE
	case status == http.StatusNotFound || status == http.StatusGone:
		return docgraph.ENOTFOUND
	default:
		return docgraph.EINVALID
	}
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
