package index

import (
	"sort"
	"strings"

	"github.com/fwojciec/docgraph"
)

// conceptDictionary maps topical concept names to the keywords whose
// presence in content text attaches that concept. Keywords are lowercase.
var conceptDictionary = map[string][]string{
	"Authentication": {"oauth", "token", "api key", "credential", "authorization", "bearer"},
	"Student":        {"student", "learner", "enrollment", "pupil"},
	"Assessment":     {"assessment", "quiz", "test", "assignment", "submission"},
	"Analytics":      {"analytics", "report", "metric", "insight", "dashboard"},
	"Standards":      {"standard", "curriculum", "competency", "alignment"},
	"Roster":         {"roster", "class", "section", "teacher", "school"},
	"Grade":          {"grade", "score", "gradebook", "mark"},
}

// extractConcepts scans one content item for dictionary keywords and
// records the concepts it mentions. Concepts are merged by name: a
// concept seen in several sources accumulates all of them. Must be
// called with mu held.
func (ix *Indexer) extractConcepts(source string, content *docgraph.CrawledContent) {
	text := strings.ToLower(content.Title + " " + content.Text)

	for name, keywords := range conceptDictionary {
		var hits []string
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				hits = append(hits, kw)
			}
		}
		if len(hits) == 0 {
			continue
		}

		c, ok := ix.concepts[name]
		if !ok {
			c = &docgraph.IndexedConcept{
				ID:   entityID("co", "concept", name),
				Name: name,
			}
			ix.concepts[name] = c
		}
		c.Sources = mergeUnique(c.Sources, source)
		c.Keywords = mergeUnique(c.Keywords, hits...)
		c.SearchText = normalize(name, strings.Join(c.Keywords, " "))
	}
}

// mergeUnique appends items not already present and keeps the slice
// sorted for deterministic output.
func mergeUnique(existing []string, items ...string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		seen[s] = struct{}{}
	}
	for _, s := range items {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			existing = append(existing, s)
		}
	}
	sort.Strings(existing)
	return existing
}
