package docgraph

import (
	"context"
	"time"
)

// Format identifies the layout family of a documentation source. The format
// determines which extractor parses the rendered page, so the rest of the
// pipeline never branches on URL shapes.
type Format string

// Known content formats.
const (
	// FormatAPIReference is a statically structured API reference with a
	// predictable operation/model layout.
	FormatAPIReference Format = "api_reference"

	// FormatInteractive is an interactive reference UI built around
	// clickable operation blocks with inline code samples.
	FormatInteractive Format = "interactive_reference"

	// FormatRichText is a prose document: guides, tutorials, help articles.
	FormatRichText Format = "rich_text"

	// FormatVideo is a video walkthrough page with a transcript.
	FormatVideo Format = "video"
)

// Valid reports whether f is one of the known formats.
func (f Format) Valid() bool {
	switch f {
	case FormatAPIReference, FormatInteractive, FormatRichText, FormatVideo:
		return true
	}
	return false
}

// Endpoint is an API operation extracted from documentation.
type Endpoint struct {
	ID          string      `json:"id,omitempty"`
	Method      string      `json:"method"`
	Path        string      `json:"path"`
	Summary     string      `json:"summary"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
}

// Parameter is a single parameter of an Endpoint.
type Parameter struct {
	Name        string `json:"name"`
	In          string `json:"in,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Description string `json:"description,omitempty"`
}

// Schema is a data model extracted from documentation.
type Schema struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Properties  []string `json:"properties,omitempty"`
	Description string   `json:"description"`
}

// CodeExample is a code sample extracted from documentation.
type CodeExample struct {
	ID          string   `json:"id,omitempty"`
	Language    string   `json:"language"`
	Title       string   `json:"title,omitempty"`
	Code        string   `json:"code"`
	Description string   `json:"description,omitempty"`
	RelatedIDs  []string `json:"relatedIds,omitempty"`
}

// Heading is one entry of a document's heading hierarchy.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link is a hyperlink found in a rich-text document.
type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Table is a table found in a rich-text document.
type Table struct {
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
}

// CrawledContent is the ephemeral result of one fetch against one source
// URL. It is produced by the fetcher and consumed by the store and the
// indexer; it is never persisted in this shape.
type CrawledContent struct {
	URL       string         `json:"url"`
	Title     string         `json:"title"`
	Text      string         `json:"text"`
	Format    Format         `json:"format"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	FetchedAt time.Time      `json:"fetchedAt"`

	Endpoints []Endpoint    `json:"endpoints,omitempty"`
	Schemas   []Schema      `json:"schemas,omitempty"`
	Examples  []CodeExample `json:"examples,omitempty"`

	Headings []Heading `json:"headings,omitempty"`
	Links    []Link    `json:"links,omitempty"`
	Tables   []Table   `json:"tables,omitempty"`
}

// Validate returns an error if the content is missing required fields.
func (c *CrawledContent) Validate() error {
	if c.URL == "" {
		return Errorf(EINVALID, "content URL required")
	}
	if !c.Format.Valid() {
		return Errorf(EINVALID, "unknown content format %q", c.Format)
	}
	return nil
}

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content, or plain HTTP for static pages.
type Fetcher interface {
	// Fetch navigates to the URL, waits for the page to render, and returns
	// the rendered HTML. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	Close() error
}

// ContentExtractor parses rendered HTML into structured CrawledContent.
// One implementation exists per Format.
type ContentExtractor interface {
	Extract(html, url string) (*CrawledContent, error)
}

// ExtractorRegistry resolves the ContentExtractor for a Format.
// Unknown formats resolve to the API reference extractor.
type ExtractorRegistry interface {
	Get(format Format) ContentExtractor
}

// Body holds the main content of a page with boilerplate removed.
type Body struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	ContentHTML string
}

// BodyExtractor extracts main content from HTML pages, removing boilerplate
// (nav, footer, sidebar, ads).
type BodyExtractor interface {
	Extract(html string) (*Body, error)
}

// Converter transforms HTML into Markdown.
type Converter interface {
	Convert(html string) (markdown string, err error)
}

// Limiter enforces a minimum spacing between outbound fetches.
type Limiter interface {
	// Wait blocks until the next fetch is allowed to start.
	// Returns an error if the context is canceled before then.
	Wait(ctx context.Context) error
}
