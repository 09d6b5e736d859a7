package docgraph

// IndexedEndpoint is the analytical record of an API operation, derived from
// CrawledContent during indexing. IDs are deterministic hashes of the
// source+method+path natural key so re-indexing is idempotent.
type IndexedEndpoint struct {
	ID          string   `json:"id"`
	Source      string   `json:"source"`
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	SearchText  string   `json:"searchText"`
	RelatedIDs  []string `json:"relatedIds,omitempty"`
}

// IndexedSchema is the analytical record of a data model.
type IndexedSchema struct {
	ID          string   `json:"id"`
	Source      string   `json:"source"`
	Name        string   `json:"name"`
	Properties  []string `json:"properties,omitempty"`
	Description string   `json:"description"`
	SearchText  string   `json:"searchText"`
	RelatedIDs  []string `json:"relatedIds,omitempty"`
}

// IndexedCodeExample is the analytical record of a code sample.
type IndexedCodeExample struct {
	ID          string   `json:"id"`
	Source      string   `json:"source"`
	Language    string   `json:"language"`
	Title       string   `json:"title,omitempty"`
	Code        string   `json:"code"`
	Description string   `json:"description,omitempty"`
	SearchText  string   `json:"searchText"`
	RelatedIDs  []string `json:"relatedIds,omitempty"`
}

// IndexedConcept is a dictionary-derived topical label attached to content
// based on keyword presence. Concepts are merged by name across sources.
type IndexedConcept struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Keywords   []string `json:"keywords"`
	Sources    []string `json:"sources"`
	SearchText string   `json:"searchText"`
	RelatedIDs []string `json:"relatedIds,omitempty"`
}

// RelationKind classifies a Relationship edge.
type RelationKind string

// Known relationship kinds.
const (
	RelationSimilarEndpoint RelationKind = "similar_endpoint"
	RelationSimilarSchema   RelationKind = "similar_schema"
	RelationSimilarExample  RelationKind = "similar_code_example"
	RelationPatternLink     RelationKind = "integration_pattern_link"
)

// Relationship is a scored edge connecting two entities that originate from
// different logical sources. SourceAPI and TargetAPI are always distinct.
type Relationship struct {
	ID          string       `json:"id"`
	SourceAPI   string       `json:"sourceApi"`
	TargetAPI   string       `json:"targetApi"`
	Kind        RelationKind `json:"kind"`
	Score       float64      `json:"score"`
	Description string       `json:"description"`
}

// Validate returns an error if the relationship violates the cross-source
// invariant or carries an out-of-range score.
func (r *Relationship) Validate() error {
	if r.SourceAPI == r.TargetAPI {
		return Errorf(EINVALID, "relationship must connect distinct sources, got %q on both ends", r.SourceAPI)
	}
	if r.Score < 0 || r.Score > 1 {
		return Errorf(EINVALID, "relationship score %v outside [0,1]", r.Score)
	}
	return nil
}

// IntegrationPattern is an authored, multi-step procedure spanning multiple
// logical sources, enriched at index time with matching code example IDs.
type IntegrationPattern struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Sources       []string `json:"sources"`
	Steps         []string `json:"steps"`
	Prerequisites []string `json:"prerequisites,omitempty"`
	Difficulty    string   `json:"difficulty"`
	ExampleIDs    []string `json:"exampleIds,omitempty"`
}

// IndexQuery describes a search over the relationship index.
type IndexQuery struct {
	Query  string `json:"query"`
	Source string `json:"source,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// Entity type labels used in IndexMatch.
const (
	EntityEndpoint = "endpoint"
	EntitySchema   = "schema"
	EntityExample  = "code_example"
	EntityConcept  = "concept"
)

// IndexMatch is one ranked hit of an index search.
type IndexMatch struct {
	Type          string   `json:"type"`
	ID            string   `json:"id"`
	Source        string   `json:"source,omitempty"`
	Title         string   `json:"title"`
	Relevance     float64  `json:"relevance"`
	MatchedFields []string `json:"matchedFields,omitempty"`
}

// IndexStats summarizes the state of the relationship index.
type IndexStats struct {
	Endpoints     int `json:"endpoints"`
	Schemas       int `json:"schemas"`
	Examples      int `json:"examples"`
	Concepts      int `json:"concepts"`
	Relationships int `json:"relationships"`
	Patterns      int `json:"patterns"`
}

// Thresholds holds the minimum similarity scores required before a
// relationship is recorded. The defaults have no empirical derivation and
// should be tuned per deployment.
type Thresholds struct {
	Endpoint float64 `json:"endpoint"`
	Schema   float64 `json:"schema"`
	Example  float64 `json:"example"`
}

// DefaultThresholds returns the default similarity thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Endpoint: 0.6, Schema: 0.5, Example: 0.4}
}
