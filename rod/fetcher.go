// Package rod provides a browser-automation implementation of
// docgraph.Fetcher for sources that render their content with JavaScript.
package rod

import (
	"context"

	"github.com/fwojciec/docgraph"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements docgraph.Fetcher at compile time.
var _ docgraph.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser
// automation. A fresh page is acquired for every fetch and released
// regardless of outcome, so failed navigations cannot leak handles.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
}

// NewFetcher creates a new Fetcher backed by a managed headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...ManagerOption) (*Fetcher, error) {
	manager, err := NewBrowserManager(opts...)
	if err != nil {
		return nil, err
	}
	return &Fetcher{manager: manager}, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
// The context bounds navigation and rendering.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser := f.manager.Browser()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	// Release the rendering session whether or not the fetch succeeded.
	defer func() {
		_ = page.Close()
		f.manager.IncrementPageCount()
	}()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	return page.HTML()
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
