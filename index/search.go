package index

import (
	"slices"
	"sort"
	"strings"

	"github.com/fwojciec/docgraph"
)

const defaultSearchLimit = 20

// partialMatchWeight discounts prefix-only token matches relative to full
// substring hits.
const partialMatchWeight = 0.3

// Search ranks indexed entities against a free-text query. Relevance is
// the mean per-query-token score: a token scores 1 when it appears
// verbatim in the entity's search text, otherwise a discounted count of
// target tokens it prefixes. Results across all entity types are merged
// and sorted by relevance.
func (ix *Indexer) Search(q docgraph.IndexQuery) []docgraph.IndexMatch {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	tokens := wordTokens(q.Query)
	if len(tokens) == 0 {
		return nil
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	var matches []docgraph.IndexMatch

	for _, ep := range ix.endpoints {
		if q.Source != "" && ep.Source != q.Source {
			continue
		}
		if rel := relevance(tokens, ep.SearchText); rel > 0 {
			matches = append(matches, docgraph.IndexMatch{
				Type:          docgraph.EntityEndpoint,
				ID:            ep.ID,
				Source:        ep.Source,
				Title:         ep.Method + " " + ep.Path,
				Relevance:     rel,
				MatchedFields: matchedFields(tokens, map[string]string{"method": ep.Method, "path": ep.Path, "summary": ep.Summary, "description": ep.Description}),
			})
		}
	}

	for _, sc := range ix.schemas {
		if q.Source != "" && sc.Source != q.Source {
			continue
		}
		if rel := relevance(tokens, sc.SearchText); rel > 0 {
			matches = append(matches, docgraph.IndexMatch{
				Type:          docgraph.EntitySchema,
				ID:            sc.ID,
				Source:        sc.Source,
				Title:         sc.Name,
				Relevance:     rel,
				MatchedFields: matchedFields(tokens, map[string]string{"name": sc.Name, "properties": strings.Join(sc.Properties, " "), "description": sc.Description}),
			})
		}
	}

	for _, ex := range ix.examples {
		if q.Source != "" && ex.Source != q.Source {
			continue
		}
		if rel := relevance(tokens, ex.SearchText); rel > 0 {
			title := ex.Title
			if title == "" {
				title = ex.Language + " example"
			}
			matches = append(matches, docgraph.IndexMatch{
				Type:          docgraph.EntityExample,
				ID:            ex.ID,
				Source:        ex.Source,
				Title:         title,
				Relevance:     rel,
				MatchedFields: matchedFields(tokens, map[string]string{"title": ex.Title, "code": ex.Code, "description": ex.Description}),
			})
		}
	}

	for _, c := range ix.concepts {
		if q.Source != "" && !slices.Contains(c.Sources, q.Source) {
			continue
		}
		if rel := relevance(tokens, c.SearchText); rel > 0 {
			matches = append(matches, docgraph.IndexMatch{
				Type:          docgraph.EntityConcept,
				ID:            c.ID,
				Title:         c.Name,
				Relevance:     rel,
				MatchedFields: matchedFields(tokens, map[string]string{"name": c.Name, "keywords": strings.Join(c.Keywords, " ")}),
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Relevance != matches[j].Relevance {
			return matches[i].Relevance > matches[j].Relevance
		}
		return matches[i].ID < matches[j].ID
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// relevance is the mean per-token score against a search text. Each token
// contributes 1 for a verbatim substring hit or a discounted count of
// target tokens it prefixes, capped at 1.
func relevance(tokens []string, searchText string) float64 {
	targets := strings.Fields(searchText)

	var total float64
	for _, tok := range tokens {
		if strings.Contains(searchText, tok) {
			total++
			continue
		}
		var prefixed int
		for _, target := range targets {
			if strings.HasPrefix(target, tok) || strings.HasPrefix(tok, target) {
				prefixed++
			}
		}
		score := partialMatchWeight * float64(prefixed)
		if score > 1 {
			score = 1
		}
		total += score
	}
	return total / float64(len(tokens))
}

// matchedFields lists the named fields in which any query token appears.
func matchedFields(tokens []string, fields map[string]string) []string {
	var out []string
	for name, value := range fields {
		lower := strings.ToLower(value)
		for _, tok := range tokens {
			if strings.Contains(lower, tok) {
				out = append(out, name)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}
