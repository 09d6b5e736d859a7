package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/beevik/etree"
	"github.com/fwojciec/docgraph"
)

// Ensure VideoExtractor implements docgraph.ContentExtractor.
var _ docgraph.ContentExtractor = (*VideoExtractor)(nil)

// VideoExtractor handles video walkthrough pages. It extracts the title,
// description, duration, and the transcript text. Transcripts embedded as
// timed-text XML (the caption format video hosts inline into the page) are
// parsed with etree; plain transcript containers are read directly.
type VideoExtractor struct{}

// NewVideoExtractor creates a new VideoExtractor.
func NewVideoExtractor() *VideoExtractor {
	return &VideoExtractor{}
}

// Extract parses rendered HTML into CrawledContent.
func (e *VideoExtractor) Extract(html, url string) (*docgraph.CrawledContent, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	title := pageTitle(doc)
	description := metaContent(doc, `meta[property="og:description"]`, `meta[name="description"]`)
	transcript := extractTranscript(doc)

	content := &docgraph.CrawledContent{
		URL:      url,
		Title:    title,
		Format:   docgraph.FormatVideo,
		Metadata: map[string]any{"description": description},
	}

	if seconds, ok := videoDuration(doc); ok {
		content.Metadata["durationSeconds"] = seconds
	}
	content.Metadata["hasTranscript"] = transcript != ""

	// The transcript is the searchable text; fall back to the description
	// for pages without one.
	content.Text = transcript
	if content.Text == "" {
		content.Text = description
	}

	if content.Title == "" && content.Text == "" {
		return nil, docgraph.Errorf(docgraph.EUNAVAILABLE, "expected content not found at %s", url)
	}

	return content, nil
}

func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, s := range selectors {
		if v, ok := doc.Find(s).Attr("content"); ok && v != "" {
			return collapseWhitespace(v)
		}
	}
	return ""
}

// extractTranscript looks for an inline timed-text XML document first and
// falls back to a plain transcript container.
func extractTranscript(doc *goquery.Document) string {
	var xmlSrc string
	doc.Find(`script[type="text/xml"], script[type="application/ttml+xml"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src := strings.TrimSpace(sel.Text())
		if strings.Contains(src, "<transcript") || strings.Contains(src, "<tt") {
			xmlSrc = src
			return false
		}
		return true
	})
	if xmlSrc != "" {
		if transcript := parseTimedText(xmlSrc); transcript != "" {
			return transcript
		}
	}

	return firstText(doc.Selection, ".transcript", "#transcript", "[data-transcript]")
}

// parseTimedText joins the cue texts of a timed-text XML document. Both the
// flat <transcript><text> layout and the TTML <tt><body><p> layout occur in
// the wild.
func parseTimedText(src string) string {
	xml := etree.NewDocument()
	if err := xml.ReadFromString(src); err != nil {
		return ""
	}

	var cues []string
	for _, path := range []string{"//text", "//p"} {
		for _, el := range xml.FindElements(path) {
			if cue := collapseWhitespace(el.Text()); cue != "" {
				cues = append(cues, cue)
			}
		}
		if len(cues) > 0 {
			break
		}
	}
	return strings.Join(cues, " ")
}

var iso8601Duration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// videoDuration reads the duration from page metadata. Supports both plain
// seconds (video:duration) and ISO 8601 durations (itemprop=duration).
func videoDuration(doc *goquery.Document) (int, bool) {
	if v := metaContent(doc, `meta[property="video:duration"]`); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil {
			return seconds, true
		}
	}

	v := metaContent(doc, `meta[itemprop="duration"]`)
	m := iso8601Duration.FindStringSubmatch(v)
	if m == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	return hours*3600 + minutes*60 + seconds, true
}
