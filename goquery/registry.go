// Package goquery provides CSS-selector-based content extractors, one per
// documentation format. Each extractor walks the layout its format is known
// to use and recovers structured facts (endpoints, schemas, code examples)
// alongside the searchable body text.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docgraph"
)

// Ensure Registry implements docgraph.ExtractorRegistry at compile time.
var _ docgraph.ExtractorRegistry = (*Registry)(nil)

// Registry maps content formats to their extractors.
type Registry struct {
	extractors map[docgraph.Format]docgraph.ContentExtractor
	fallback   docgraph.ContentExtractor
}

// NewRegistry creates a Registry. The fallback extractor handles formats
// with no registered extractor; by convention this is the API reference
// extractor, which degrades gracefully on unknown layouts.
func NewRegistry(fallback docgraph.ContentExtractor) *Registry {
	return &Registry{
		extractors: make(map[docgraph.Format]docgraph.ContentExtractor),
		fallback:   fallback,
	}
}

// Register associates an extractor with a format.
func (r *Registry) Register(format docgraph.Format, e docgraph.ContentExtractor) {
	r.extractors[format] = e
}

// Get returns the extractor for the format, or the fallback if none is
// registered.
func (r *Registry) Get(format docgraph.Format) docgraph.ContentExtractor {
	if e, ok := r.extractors[format]; ok {
		return e
	}
	return r.fallback
}

// parse wraps goquery document construction with the domain parse error.
func parse(html string) (*goquery.Document, error) {
	if strings.TrimSpace(html) == "" {
		return nil, docgraph.Errorf(docgraph.EPARSE, "empty HTML input")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docgraph.Errorf(docgraph.EPARSE, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// collapseWhitespace normalizes runs of whitespace to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// pageTitle returns the page title, preferring og:title over <title> over
// the first h1.
func pageTitle(doc *goquery.Document) string {
	if t, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && t != "" {
		return collapseWhitespace(t)
	}
	if t := collapseWhitespace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return collapseWhitespace(doc.Find("h1").First().Text())
}

// bodyText returns the whitespace-normalized text of the page body.
func bodyText(doc *goquery.Document) string {
	return collapseWhitespace(doc.Find("body").Text())
}

// firstText returns the text of the first selection matching any of the
// given selectors.
func firstText(sel *goquery.Selection, selectors ...string) string {
	for _, s := range selectors {
		if t := collapseWhitespace(sel.Find(s).First().Text()); t != "" {
			return t
		}
	}
	return ""
}
