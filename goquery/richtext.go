package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docgraph"
)

// Ensure RichTextExtractor implements docgraph.ContentExtractor.
var _ docgraph.ContentExtractor = (*RichTextExtractor)(nil)

// RichTextExtractor handles prose documents: guides, tutorials, help
// articles. It extracts the heading hierarchy, hyperlinks, and tables, and
// delegates body extraction to a boilerplate-removing BodyExtractor whose
// output is converted to markdown.
type RichTextExtractor struct {
	// Body extracts main content with boilerplate removed. Optional;
	// without it the raw body text is used.
	Body docgraph.BodyExtractor

	// Fallback is tried when Body fails or returns nothing. Optional.
	Fallback docgraph.BodyExtractor

	// Converter turns the extracted content HTML into markdown. Optional;
	// without it the plain text is kept.
	Converter docgraph.Converter
}

// Extract parses rendered HTML into CrawledContent.
func (e *RichTextExtractor) Extract(html, url string) (*docgraph.CrawledContent, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	content := &docgraph.CrawledContent{
		URL:    url,
		Title:  pageTitle(doc),
		Format: docgraph.FormatRichText,
	}

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		text := collapseWhitespace(sel.Text())
		if text == "" {
			return
		}
		level, _ := strconv.Atoi(strings.TrimPrefix(goquery.NodeName(sel), "h"))
		content.Headings = append(content.Headings, docgraph.Heading{Level: level, Text: text})
	})

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := sel.AttrOr("href", "")
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}
		content.Links = append(content.Links, docgraph.Link{
			Text: collapseWhitespace(sel.Text()),
			URL:  href,
		})
	})

	doc.Find("table").Each(func(_ int, sel *goquery.Selection) {
		if table := extractTable(sel); len(table.Rows) > 0 || len(table.Headers) > 0 {
			content.Tables = append(content.Tables, table)
		}
	})

	content.Text = e.extractBody(doc, html)
	if content.Text == "" {
		return nil, docgraph.Errorf(docgraph.EUNAVAILABLE, "expected content not found at %s", url)
	}

	return content, nil
}

// extractBody runs the boilerplate-removing extractor chain and converts
// the result to markdown. Every step degrades to the next one so a prose
// page always yields some text.
func (e *RichTextExtractor) extractBody(doc *goquery.Document, html string) string {
	body := e.extractMain(html)
	if body == nil || body.ContentHTML == "" {
		return bodyText(doc)
	}

	if e.Converter != nil {
		if markdown, err := e.Converter.Convert(body.ContentHTML); err == nil {
			return strings.TrimSpace(markdown)
		}
	}

	inner, err := goquery.NewDocumentFromReader(strings.NewReader(body.ContentHTML))
	if err != nil {
		return bodyText(doc)
	}
	return collapseWhitespace(inner.Text())
}

func (e *RichTextExtractor) extractMain(html string) *docgraph.Body {
	if e.Body != nil {
		if body, err := e.Body.Extract(html); err == nil && body.ContentHTML != "" {
			return body
		}
	}
	if e.Fallback != nil {
		if body, err := e.Fallback.Extract(html); err == nil && body.ContentHTML != "" {
			return body
		}
	}
	return nil
}

func extractTable(sel *goquery.Selection) docgraph.Table {
	var table docgraph.Table

	sel.Find("thead th, tr:first-child th").Each(func(_ int, th *goquery.Selection) {
		table.Headers = append(table.Headers, collapseWhitespace(th.Text()))
	})

	sel.Find("tbody tr, tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			row = append(row, collapseWhitespace(td.Text()))
		})
		if len(row) > 0 {
			table.Rows = append(table.Rows, row)
		}
	})

	return table
}
