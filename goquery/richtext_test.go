package goquery_test

import (
	"testing"

	"github.com/fwojciec/docgraph"
	"github.com/fwojciec/docgraph/goquery"
	"github.com/fwojciec/docgraph/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const richTextPage = `<!DOCTYPE html>
<html>
<head><title>Getting Started with Rostering</title></head>
<body>
<nav><a href="#main">Skip to content</a><a href="javascript:void(0)">Menu</a></nav>
<article>
	<h1>Getting Started with Rostering</h1>
	<h2>Prerequisites</h2>
	<p>Request credentials from your <a href="/support">support contact</a> first.</p>
	<h3>Sync cadence</h3>
	<table>
		<thead><tr><th>Mode</th><th>Interval</th></tr></thead>
		<tbody>
			<tr><td>Full</td><td>Nightly</td></tr>
			<tr><td>Delta</td><td>Hourly</td></tr>
		</tbody>
	</table>
</article>
</body>
</html>`

func TestRichTextExtractor(t *testing.T) {
	t.Parallel()

	t.Run("extracts headings, links, and tables", func(t *testing.T) {
		t.Parallel()

		e := &goquery.RichTextExtractor{}
		content, err := e.Extract(richTextPage, "https://classlink.example.com/guide")
		require.NoError(t, err)

		assert.Equal(t, "Getting Started with Rostering", content.Title)
		assert.Equal(t, docgraph.FormatRichText, content.Format)

		require.Len(t, content.Headings, 3)
		assert.Equal(t, docgraph.Heading{Level: 1, Text: "Getting Started with Rostering"}, content.Headings[0])
		assert.Equal(t, docgraph.Heading{Level: 2, Text: "Prerequisites"}, content.Headings[1])
		assert.Equal(t, docgraph.Heading{Level: 3, Text: "Sync cadence"}, content.Headings[2])

		require.Len(t, content.Links, 1)
		assert.Equal(t, docgraph.Link{Text: "support contact", URL: "/support"}, content.Links[0])

		require.Len(t, content.Tables, 1)
		assert.Equal(t, []string{"Mode", "Interval"}, content.Tables[0].Headers)
		assert.Contains(t, content.Tables[0].Rows, []string{"Full", "Nightly"})
	})

	t.Run("converts the extracted body to markdown", func(t *testing.T) {
		t.Parallel()

		e := &goquery.RichTextExtractor{
			Body: &mock.BodyExtractor{ExtractFn: func(html string) (*docgraph.Body, error) {
				return &docgraph.Body{ContentHTML: "<h2>Prerequisites</h2><p>Request credentials.</p>"}, nil
			}},
			Converter: &mock.Converter{ConvertFn: func(html string) (string, error) {
				return "## Prerequisites\n\nRequest credentials.\n", nil
			}},
		}

		content, err := e.Extract(richTextPage, "https://classlink.example.com/guide")
		require.NoError(t, err)
		assert.Equal(t, "## Prerequisites\n\nRequest credentials.", content.Text)
	})

	t.Run("tries the fallback when the main extractor fails", func(t *testing.T) {
		t.Parallel()

		e := &goquery.RichTextExtractor{
			Body: &mock.BodyExtractor{ExtractFn: func(html string) (*docgraph.Body, error) {
				return nil, docgraph.Errorf(docgraph.EPARSE, "no main content")
			}},
			Fallback: &mock.BodyExtractor{ExtractFn: func(html string) (*docgraph.Body, error) {
				return &docgraph.Body{ContentHTML: "<p>fallback text</p>"}, nil
			}},
		}

		content, err := e.Extract(richTextPage, "https://classlink.example.com/guide")
		require.NoError(t, err)
		assert.Equal(t, "fallback text", content.Text)
	})

	t.Run("keeps the raw body text without extractors", func(t *testing.T) {
		t.Parallel()

		e := &goquery.RichTextExtractor{}
		content, err := e.Extract(richTextPage, "https://classlink.example.com/guide")
		require.NoError(t, err)
		assert.Contains(t, content.Text, "Request credentials")
	})

	t.Run("page without text returns EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		e := &goquery.RichTextExtractor{}
		_, err := e.Extract(`<html><body></body></html>`, "https://example.com")
		require.Error(t, err)
		assert.Equal(t, docgraph.EUNAVAILABLE, docgraph.ErrorCode(err))
	})
}
