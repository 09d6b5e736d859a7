package mock

import (
	"github.com/fwojciec/docgraph"
)

var _ docgraph.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of docgraph.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html, url string) (*docgraph.CrawledContent, error)
}

func (e *ContentExtractor) Extract(html, url string) (*docgraph.CrawledContent, error) {
	return e.ExtractFn(html, url)
}

var _ docgraph.ExtractorRegistry = (*ExtractorRegistry)(nil)

// ExtractorRegistry is a mock implementation of docgraph.ExtractorRegistry.
type ExtractorRegistry struct {
	GetFn func(format docgraph.Format) docgraph.ContentExtractor
}

func (r *ExtractorRegistry) Get(format docgraph.Format) docgraph.ContentExtractor {
	return r.GetFn(format)
}

var _ docgraph.BodyExtractor = (*BodyExtractor)(nil)

// BodyExtractor is a mock implementation of docgraph.BodyExtractor.
type BodyExtractor struct {
	ExtractFn func(html string) (*docgraph.Body, error)
}

func (e *BodyExtractor) Extract(html string) (*docgraph.Body, error) {
	return e.ExtractFn(html)
}

var _ docgraph.Converter = (*Converter)(nil)

// Converter is a mock implementation of docgraph.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
