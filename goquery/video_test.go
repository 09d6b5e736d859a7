package goquery_test

import (
	"testing"

	"github.com/fwojciec/docgraph"
	"github.com/fwojciec/docgraph/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const videoPage = `<!DOCTYPE html>
<html>
<head>
	<meta property="og:title" content="OAuth Setup Walkthrough">
	<meta property="og:description" content="Configuring OAuth credentials step by step.">
	<meta property="video:duration" content="754">
</head>
<body>
<script type="text/xml">
<transcript>
	<text start="0.5" dur="4.2">Welcome to the OAuth setup walkthrough.</text>
	<text start="4.7" dur="5.1">First, open the developer keys page.</text>
</transcript>
</script>
</body>
</html>`

func TestVideoExtractor(t *testing.T) {
	t.Parallel()

	t.Run("extracts metadata and timed-text transcript", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewVideoExtractor()
		content, err := e.Extract(videoPage, "https://videos.example.com/oauth")
		require.NoError(t, err)

		assert.Equal(t, "OAuth Setup Walkthrough", content.Title)
		assert.Equal(t, docgraph.FormatVideo, content.Format)
		assert.Equal(t, "Welcome to the OAuth setup walkthrough. First, open the developer keys page.", content.Text)
		assert.Equal(t, "Configuring OAuth credentials step by step.", content.Metadata["description"])
		assert.Equal(t, 754, content.Metadata["durationSeconds"])
		assert.Equal(t, true, content.Metadata["hasTranscript"])
	})

	t.Run("reads a plain transcript container", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Grade Passback Demo</title></head>
			<body><div class="transcript">Submit the score, then poll the result endpoint.</div></body></html>`

		e := goquery.NewVideoExtractor()
		content, err := e.Extract(html, "https://videos.example.com/passback")
		require.NoError(t, err)
		assert.Equal(t, "Submit the score, then poll the result endpoint.", content.Text)
		assert.Equal(t, true, content.Metadata["hasTranscript"])
	})

	t.Run("parses ISO 8601 durations", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<title>Long Session</title>
			<meta itemprop="duration" content="PT1H2M3S">
			<meta name="description" content="A very long session.">
		</head><body></body></html>`

		e := goquery.NewVideoExtractor()
		content, err := e.Extract(html, "https://videos.example.com/long")
		require.NoError(t, err)
		assert.Equal(t, 3723, content.Metadata["durationSeconds"])
		assert.Equal(t, false, content.Metadata["hasTranscript"])
		assert.Equal(t, "A very long session.", content.Text)
	})

	t.Run("falls back to the description without a transcript", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<meta property="og:description" content="Overview of the analytics dashboard.">
		</head><body></body></html>`

		e := goquery.NewVideoExtractor()
		content, err := e.Extract(html, "https://videos.example.com/analytics")
		require.NoError(t, err)
		assert.Equal(t, "Overview of the analytics dashboard.", content.Text)
	})

	t.Run("page without title or text returns EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewVideoExtractor()
		_, err := e.Extract(`<html><body></body></html>`, "https://example.com")
		require.Error(t, err)
		assert.Equal(t, docgraph.EUNAVAILABLE, docgraph.ErrorCode(err))
	})
}
