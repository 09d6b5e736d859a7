package store

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fwojciec/docgraph"
)

// Scoring weights. A verbatim phrase hit dominates individual token hits.
const (
	phraseScore = 10
	tokenScore  = 2
)

// snippetRadius is the number of characters kept on each side of the first
// matched token.
const snippetRadius = 50

// Search runs a ranked full-text query over the stored documents.
// Candidates come from the inverted index, are filtered by source and date
// range, scored, and returned in non-increasing score order.
func (s *Store) Search(query docgraph.SearchQuery) ([]*docgraph.SearchResult, error) {
	tokens := searchTokens(query.Query)
	if len(tokens) == 0 {
		return nil, docgraph.Errorf(docgraph.EINVALID, "empty search query")
	}

	patterns := make([]*regexp.Regexp, len(tokens))
	for i, tok := range tokens {
		patterns[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(tok))
	}
	phrase := strings.ToLower(strings.TrimSpace(query.Query))

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*docgraph.SearchResult
	for id := range s.index.candidates(tokens) {
		doc := s.byID[id]
		if !matchesFilters(doc, query) {
			continue
		}

		text := searchText(doc)
		lower := strings.ToLower(text)

		var score float64
		if strings.Contains(lower, phrase) {
			score += phraseScore
		}
		for _, re := range patterns {
			score += tokenScore * float64(len(re.FindAllStringIndex(text, -1)))
		}
		if score == 0 {
			continue
		}

		results = append(results, &docgraph.SearchResult{
			Document: clone(doc),
			Score:    score,
			Snippet:  snippet(text, lower, tokens),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Document.ID < results[j].Document.ID
	})

	return paginate(results, query.Offset, query.Limit), nil
}

// searchTokens tokenizes a query, dropping short tokens the index never
// recorded.
func searchTokens(query string) []string {
	var out []string
	for _, tok := range Tokenize(query) {
		if len(tok) >= minTokenLength {
			out = append(out, tok)
		}
	}
	return out
}

func matchesFilters(doc *docgraph.StoredDocument, query docgraph.SearchQuery) bool {
	if query.Source != "" && doc.Source != query.Source {
		return false
	}
	if !query.After.IsZero() && doc.Meta.LastUpdated.Before(query.After) {
		return false
	}
	if !query.Before.IsZero() && doc.Meta.LastUpdated.After(query.Before) {
		return false
	}
	return true
}

// snippet returns a window of text around the first matched token.
func snippet(text, lower string, tokens []string) string {
	pos := -1
	for _, tok := range tokens {
		if i := strings.Index(lower, tok); i >= 0 && (pos < 0 || i < pos) {
			pos = i
		}
	}
	if pos < 0 {
		pos = 0
	}

	start := max(pos-snippetRadius, 0)
	end := min(pos+snippetRadius, len(text))

	out := strings.TrimSpace(text[start:end])
	if start > 0 {
		out = "..." + out
	}
	if end < len(text) {
		out += "..."
	}
	return out
}

func paginate(results []*docgraph.SearchResult, offset, limit int) []*docgraph.SearchResult {
	if offset >= len(results) {
		return nil
	}
	results = results[offset:]
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results
}

// searchText concatenates every searchable field of a document: title,
// content, and the text of its extracted entities.
func searchText(doc *docgraph.StoredDocument) string {
	var b strings.Builder
	b.WriteString(doc.Title)
	b.WriteString(" ")
	b.WriteString(doc.Content)
	for _, ep := range doc.Endpoints {
		b.WriteString(" ")
		b.WriteString(ep.Method)
		b.WriteString(" ")
		b.WriteString(ep.Path)
		b.WriteString(" ")
		b.WriteString(ep.Summary)
		b.WriteString(" ")
		b.WriteString(ep.Description)
	}
	for _, sc := range doc.Schemas {
		b.WriteString(" ")
		b.WriteString(sc.Name)
		b.WriteString(" ")
		b.WriteString(strings.Join(sc.Properties, " "))
		b.WriteString(" ")
		b.WriteString(sc.Description)
	}
	for _, ex := range doc.Examples {
		b.WriteString(" ")
		b.WriteString(ex.Title)
		b.WriteString(" ")
		b.WriteString(ex.Description)
	}
	return b.String()
}
