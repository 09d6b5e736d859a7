package crawl

import (
	"net/url"
	"strings"

	"github.com/fwojciec/docgraph"
)

// DetectFormat identifies the content format from URL shape alone.
// Unknown URLs default to the structured API reference format, which is the
// most forgiving extractor.
func DetectFormat(rawURL string) docgraph.Format {
	u, err := url.Parse(rawURL)
	if err != nil {
		return docgraph.FormatAPIReference
	}

	host := strings.ToLower(u.Host)
	path := strings.ToLower(u.Path)

	switch {
	case isVideoHost(host), strings.Contains(path, "/watch"), strings.Contains(path, "/videos/"):
		return docgraph.FormatVideo
	case strings.Contains(path, "swagger"),
		strings.Contains(path, "api-explorer"),
		strings.Contains(path, "playground"),
		strings.Contains(path, "interactive"):
		return docgraph.FormatInteractive
	case strings.Contains(path, "/guides"),
		strings.Contains(path, "/tutorials"),
		strings.Contains(path, "/articles"),
		strings.Contains(path, "/help"),
		strings.Contains(host, "support."):
		return docgraph.FormatRichText
	default:
		return docgraph.FormatAPIReference
	}
}

func isVideoHost(host string) bool {
	for _, h := range []string{"youtube.com", "youtu.be", "vimeo.com", "wistia.com"} {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}
