package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docgraph"
)

// Hash computes the content fingerprint used for change detection.
// xxHash is cheap and collisions only cost one missed version bump.
func Hash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// bumpPatch increments the patch component of a semantic version string.
// Unparseable versions restart at 1.0.0.
func bumpPatch(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return "1.0.0"
	}
	patch, err := strconv.Atoi(parts[2])
	if err != nil {
		return "1.0.0"
	}
	return fmt.Sprintf("%s.%s.%d", parts[0], parts[1], patch+1)
}

// detectChanges describes what differs between the stored document and the
// incoming content. The descriptions end up in the version history.
func detectChanges(old *docgraph.StoredDocument, content *docgraph.CrawledContent) []string {
	var changes []string

	if old.Title != content.Title {
		changes = append(changes, fmt.Sprintf("title changed from %q to %q", old.Title, content.Title))
	}
	if old.Content != content.Text {
		changes = append(changes, fmt.Sprintf("content changed (%d -> %d bytes)", len(old.Content), len(content.Text)))
	}
	if n, m := len(old.Endpoints), len(content.Endpoints); n != m {
		changes = append(changes, fmt.Sprintf("endpoints changed (%d -> %d)", n, m))
	}
	if n, m := len(old.Schemas), len(content.Schemas); n != m {
		changes = append(changes, fmt.Sprintf("schemas changed (%d -> %d)", n, m))
	}
	if n, m := len(old.Examples), len(content.Examples); n != m {
		changes = append(changes, fmt.Sprintf("code examples changed (%d -> %d)", n, m))
	}

	if len(changes) == 0 {
		changes = append(changes, "content changed")
	}
	return changes
}

// assignEntityIDs gives every embedded entity a stable ID derived from its
// natural key, so IDs survive re-crawls of unchanged entities.
func assignEntityIDs(doc *docgraph.StoredDocument) {
	for i := range doc.Endpoints {
		ep := &doc.Endpoints[i]
		ep.ID = entityID("endpoint", doc.URL, ep.Method+" "+ep.Path)
	}
	for i := range doc.Schemas {
		sc := &doc.Schemas[i]
		sc.ID = entityID("schema", doc.URL, sc.Name)
	}
	for i := range doc.Examples {
		ex := &doc.Examples[i]
		ex.ID = entityID("example", doc.URL, ex.Language+" "+ex.Title+" "+head(ex.Code, 40))
	}
}

func entityID(kind, url, key string) string {
	return fmt.Sprintf("%s-%016x", kind, xxhash.Sum64String(url+"|"+key))
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
