package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docgraph"
)

// Ensure InteractiveExtractor implements docgraph.ContentExtractor.
var _ docgraph.ContentExtractor = (*InteractiveExtractor)(nil)

// InteractiveExtractor walks the layout of interactive reference UIs built
// around clickable operation blocks (the swagger-ui family). Alongside
// endpoints it extracts inline code samples, inferring the language from
// class hints on the code block.
type InteractiveExtractor struct{}

// NewInteractiveExtractor creates a new InteractiveExtractor.
func NewInteractiveExtractor() *InteractiveExtractor {
	return &InteractiveExtractor{}
}

// Extract parses rendered HTML into CrawledContent.
func (e *InteractiveExtractor) Extract(html, url string) (*docgraph.CrawledContent, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	content := &docgraph.CrawledContent{
		URL:    url,
		Title:  pageTitle(doc),
		Text:   bodyText(doc),
		Format: docgraph.FormatInteractive,
	}

	doc.Find(".opblock, .api-operation, [data-endpoint]").Each(func(_ int, sel *goquery.Selection) {
		method := strings.ToUpper(firstText(sel, ".opblock-summary-method", ".operation-method", ".method"))
		path := firstText(sel, ".opblock-summary-path", ".operation-path", ".path")
		if !httpMethods[method] || path == "" {
			return
		}
		content.Endpoints = append(content.Endpoints, docgraph.Endpoint{
			Method:      method,
			Path:        path,
			Summary:     firstText(sel, ".opblock-summary-description", ".operation-summary"),
			Description: firstText(sel, ".opblock-description", ".operation-description", "p"),
			Tags:        opblockTags(sel),
		})
	})

	doc.Find("pre code, .code-sample").Each(func(_ int, sel *goquery.Selection) {
		code := strings.TrimSpace(sel.Text())
		if code == "" {
			return
		}
		content.Examples = append(content.Examples, docgraph.CodeExample{
			Language: codeLanguage(sel),
			Title:    sel.AttrOr("data-title", ""),
			Code:     code,
		})
	})

	if content.Text == "" && len(content.Endpoints) == 0 && len(content.Examples) == 0 {
		return nil, docgraph.Errorf(docgraph.EUNAVAILABLE, "expected content not found at %s", url)
	}

	return content, nil
}

func opblockTags(sel *goquery.Selection) []string {
	var tags []string
	sel.Find(".opblock-tag, .tag").Each(func(_ int, t *goquery.Selection) {
		if tag := collapseWhitespace(t.Text()); tag != "" {
			tags = append(tags, tag)
		}
	})
	return tags
}

// codeLanguage infers the sample language from class/attribute hints on the
// code element or its parent. Anything unrecognized is "unknown".
func codeLanguage(sel *goquery.Selection) string {
	hints := sel.AttrOr("class", "") + " " + sel.AttrOr("data-lang", "")
	if parent := sel.Parent(); parent.Length() > 0 {
		hints += " " + parent.AttrOr("class", "")
	}
	hints = strings.ToLower(hints)

	switch {
	case strings.Contains(hints, "javascript"), strings.Contains(hints, "language-js"), strings.Contains(hints, "node"):
		return "javascript"
	case strings.Contains(hints, "python"), strings.Contains(hints, "language-py"):
		return "python"
	case strings.Contains(hints, "curl"), strings.Contains(hints, "shell"), strings.Contains(hints, "bash"):
		return "curl"
	default:
		return "unknown"
	}
}
