package index

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docgraph"
)

// Similarity scoring weights. Derived from observation, not theory; the
// thresholds they feed are configurable for the same reason.
const (
	endpointMethodWeight = 0.3
	endpointPathWeight   = 0.4
	endpointTextWeight   = 0.3

	schemaNameWeight  = 0.4
	schemaPropsWeight = 0.6
)

// buildRelationships recomputes every cross-source relationship edge from
// scratch. Related-ID lists are cleared first so the pass stays idempotent
// across batches. Must be called with mu held.
func (ix *Indexer) buildRelationships() {
	ix.relationships = make(map[string]*docgraph.Relationship)
	for _, ep := range ix.endpoints {
		ep.RelatedIDs = nil
	}
	for _, sc := range ix.schemas {
		sc.RelatedIDs = nil
	}
	for _, ex := range ix.examples {
		ex.RelatedIDs = nil
	}

	ix.relateEndpoints()
	ix.relateSchemas()
	ix.relateExamples()
}

func (ix *Indexer) relateEndpoints() {
	eps := make([]*docgraph.IndexedEndpoint, 0, len(ix.endpoints))
	for _, ep := range ix.endpoints {
		eps = append(eps, ep)
	}

	for i := range eps {
		for j := i + 1; j < len(eps); j++ {
			a, b := eps[i], eps[j]
			if a.Source == b.Source {
				continue
			}

			score := endpointSimilarity(a, b)
			if score <= ix.thresholds.Endpoint {
				continue
			}

			ix.addRelationship(&docgraph.Relationship{
				ID:          relationshipID(docgraph.RelationSimilarEndpoint, a.ID, b.ID),
				SourceAPI:   a.Source,
				TargetAPI:   b.Source,
				Kind:        docgraph.RelationSimilarEndpoint,
				Score:       score,
				Description: fmt.Sprintf("%s %s (%s) is similar to %s %s (%s)", a.Method, a.Path, a.Source, b.Method, b.Path, b.Source),
			})
			a.RelatedIDs = append(a.RelatedIDs, b.ID)
			b.RelatedIDs = append(b.RelatedIDs, a.ID)
		}
	}
}

func (ix *Indexer) relateSchemas() {
	scs := make([]*docgraph.IndexedSchema, 0, len(ix.schemas))
	for _, sc := range ix.schemas {
		scs = append(scs, sc)
	}

	for i := range scs {
		for j := i + 1; j < len(scs); j++ {
			a, b := scs[i], scs[j]
			if a.Source == b.Source {
				continue
			}

			score := schemaSimilarity(a, b)
			if score <= ix.thresholds.Schema {
				continue
			}

			ix.addRelationship(&docgraph.Relationship{
				ID:          relationshipID(docgraph.RelationSimilarSchema, a.ID, b.ID),
				SourceAPI:   a.Source,
				TargetAPI:   b.Source,
				Kind:        docgraph.RelationSimilarSchema,
				Score:       score,
				Description: fmt.Sprintf("schema %s (%s) is similar to %s (%s)", a.Name, a.Source, b.Name, b.Source),
			})
			a.RelatedIDs = append(a.RelatedIDs, b.ID)
			b.RelatedIDs = append(b.RelatedIDs, a.ID)
		}
	}
}

// relateExamples cross-references similar code examples. Examples get
// mutual related IDs but no formal relationship record: sample code is too
// noisy for the relationship graph proper.
func (ix *Indexer) relateExamples() {
	exs := make([]*docgraph.IndexedCodeExample, 0, len(ix.examples))
	for _, ex := range ix.examples {
		exs = append(exs, ex)
	}

	for i := range exs {
		for j := i + 1; j < len(exs); j++ {
			a, b := exs[i], exs[j]
			if a.Source == b.Source || a.Language != b.Language {
				continue
			}

			if exampleSimilarity(a, b) <= ix.thresholds.Example {
				continue
			}
			a.RelatedIDs = append(a.RelatedIDs, b.ID)
			b.RelatedIDs = append(b.RelatedIDs, a.ID)
		}
	}
}

// addRelationship records a validated edge; relationship IDs are
// deterministic so duplicates collapse. Must be called with mu held.
func (ix *Indexer) addRelationship(rel *docgraph.Relationship) {
	if err := rel.Validate(); err != nil {
		ix.logger.Warn("dropping invalid relationship", "error", err)
		return
	}
	ix.relationships[rel.ID] = rel
}

// endpointSimilarity scores two endpoints on method equality, path segment
// overlap, and summary+description token overlap.
func endpointSimilarity(a, b *docgraph.IndexedEndpoint) float64 {
	var method float64
	if a.Method == b.Method {
		method = 1
	}
	path := overlapRatio(pathSegments(a.Path), pathSegments(b.Path))
	text := overlapRatio(wordTokens(a.Summary+" "+a.Description), wordTokens(b.Summary+" "+b.Description))

	return endpointMethodWeight*method + endpointPathWeight*path + endpointTextWeight*text
}

// schemaSimilarity scores two schemas on name token overlap and the share
// of property names they have in common.
func schemaSimilarity(a, b *docgraph.IndexedSchema) float64 {
	name := overlapRatio(wordTokens(a.Name), wordTokens(b.Name))

	props := sharedCount(lowerSet(a.Properties), lowerSet(b.Properties))
	larger := max(len(a.Properties), len(b.Properties))
	var propRatio float64
	if larger > 0 {
		propRatio = float64(props) / float64(larger)
	}

	return schemaNameWeight*name + schemaPropsWeight*propRatio
}

// exampleSimilarity is the shared-significant-word ratio of two code
// examples. Only meaningful within the same language.
func exampleSimilarity(a, b *docgraph.IndexedCodeExample) float64 {
	return overlapRatio(significantWords(a.SearchText), significantWords(b.SearchText))
}

// relationshipID is order-independent over the two entity IDs.
func relationshipID(kind docgraph.RelationKind, a, b string) string {
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("rel-%016x", xxhash.Sum64String(string(kind)+"|"+a+"|"+b))
}

// pathSegments splits an endpoint path into lowercase segments. The root
// counts as a segment of every path, so sibling top-level paths keep a
// baseline similarity instead of scoring zero.
func pathSegments(path string) []string {
	segs := []string{"/"}
	for _, seg := range strings.Split(strings.ToLower(path), "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}

// wordTokens splits text into lowercase tokens of three or more
// characters.
func wordTokens(text string) []string {
	var out []string
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ".,:;()[]{}\"'`")
		if len(tok) >= 3 {
			out = append(out, tok)
		}
	}
	return out
}

// significantWords keeps words longer than three characters.
func significantWords(text string) []string {
	var out []string
	for _, tok := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if len(tok) > 3 {
			out = append(out, tok)
		}
	}
	return out
}

// overlapRatio is the number of shared tokens over the larger token set.
func overlapRatio(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}

	larger := max(len(setA), len(setB))
	if larger == 0 {
		return 0
	}
	return float64(sharedCount(setA, setB)) / float64(larger)
}

func sharedCount(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	var n int
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}

func lowerSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, s := range items {
		out[strings.ToLower(s)] = struct{}{}
	}
	return out
}
