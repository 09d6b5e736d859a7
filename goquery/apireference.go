package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docgraph"
)

// Ensure APIReferenceExtractor implements docgraph.ContentExtractor.
var _ docgraph.ContentExtractor = (*APIReferenceExtractor)(nil)

// APIReferenceExtractor walks the operation/model layout of a structured
// API reference. It recovers endpoints (method, path, summary, parameters,
// tags) and data schemas (name, properties, description).
//
// It also serves as the fallback extractor for unknown formats: on pages
// without the expected layout it still returns the title and body text.
type APIReferenceExtractor struct{}

// NewAPIReferenceExtractor creates a new APIReferenceExtractor.
func NewAPIReferenceExtractor() *APIReferenceExtractor {
	return &APIReferenceExtractor{}
}

var httpMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true,
	"DELETE": true, "HEAD": true, "OPTIONS": true,
}

// Extract parses rendered HTML into CrawledContent.
func (e *APIReferenceExtractor) Extract(html, url string) (*docgraph.CrawledContent, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	content := &docgraph.CrawledContent{
		URL:    url,
		Title:  pageTitle(doc),
		Text:   bodyText(doc),
		Format: docgraph.FormatAPIReference,
	}

	doc.Find(".operation, [data-operation], section.endpoint").Each(func(_ int, sel *goquery.Selection) {
		if ep, ok := extractEndpoint(sel); ok {
			content.Endpoints = append(content.Endpoints, ep)
		}
	})

	doc.Find(".model, [data-model], section.schema").Each(func(_ int, sel *goquery.Selection) {
		if sc, ok := extractSchema(sel); ok {
			content.Schemas = append(content.Schemas, sc)
		}
	})

	if content.Text == "" && len(content.Endpoints) == 0 && len(content.Schemas) == 0 {
		// The layout rendered nothing we recognize. Rendering races cause
		// this more often than genuinely empty pages, so it is retryable.
		return nil, docgraph.Errorf(docgraph.EUNAVAILABLE, "expected content not found at %s", url)
	}

	return content, nil
}

// extractEndpoint recovers one operation block. Blocks without a valid
// HTTP method and path are skipped.
func extractEndpoint(sel *goquery.Selection) (docgraph.Endpoint, bool) {
	method := strings.ToUpper(firstText(sel, ".method", ".http-method"))
	if method == "" {
		method = strings.ToUpper(sel.AttrOr("data-method", ""))
	}
	path := firstText(sel, ".path", ".endpoint-path", "code.url")

	if !httpMethods[method] || path == "" {
		return docgraph.Endpoint{}, false
	}

	ep := docgraph.Endpoint{
		Method:      method,
		Path:        path,
		Summary:     firstText(sel, ".summary", "h2", "h3"),
		Description: firstText(sel, ".description", "p"),
	}

	sel.Find(".parameters li, table.parameters tbody tr").Each(func(_ int, p *goquery.Selection) {
		name := firstText(p, "code", ".param-name", "td:first-child")
		if name == "" {
			return
		}
		ep.Parameters = append(ep.Parameters, docgraph.Parameter{
			Name:        name,
			In:          p.AttrOr("data-in", ""),
			Required:    p.HasClass("required") || strings.Contains(p.Text(), "required"),
			Description: firstText(p, ".param-description", "td:last-child"),
		})
	})

	sel.Find(".tags .tag, .tag-list li").Each(func(_ int, t *goquery.Selection) {
		if tag := collapseWhitespace(t.Text()); tag != "" {
			ep.Tags = append(ep.Tags, tag)
		}
	})

	return ep, true
}

// extractSchema recovers one model block. Blocks without a name are
// skipped.
func extractSchema(sel *goquery.Selection) (docgraph.Schema, bool) {
	name := firstText(sel, ".model-name", ".schema-name", "h2", "h3")
	if name == "" {
		return docgraph.Schema{}, false
	}

	sc := docgraph.Schema{
		Name:        name,
		Description: firstText(sel, ".description", "p"),
	}

	sel.Find(".property code, .properties li code, table.properties td:first-child").Each(func(_ int, p *goquery.Selection) {
		if prop := collapseWhitespace(p.Text()); prop != "" {
			sc.Properties = append(sc.Properties, prop)
		}
	})

	return sc, true
}
