// Package index implements the relationship and concept indexer. It
// consumes batches of crawled content, materializes analytical records for
// endpoints, schemas, code examples, and concepts, and maintains
// cross-source similarity relationships plus an integration pattern
// catalog. Everything lives in memory and is rebuilt from whatever was
// crawled most recently.
package index

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docgraph"
)

// Item pairs crawled content with its owning logical source identifier.
type Item struct {
	Source  string
	Content *docgraph.CrawledContent
}

// Indexer holds the in-memory relationship index. All state is scoped to
// the instance; construct one per process (or per test) and pass it by
// reference.
type Indexer struct {
	thresholds docgraph.Thresholds
	logger     *slog.Logger

	mu            sync.RWMutex
	endpoints     map[string]*docgraph.IndexedEndpoint
	schemas       map[string]*docgraph.IndexedSchema
	examples      map[string]*docgraph.IndexedCodeExample
	concepts      map[string]*docgraph.IndexedConcept // keyed by concept name
	relationships map[string]*docgraph.Relationship
	patterns      []*docgraph.IntegrationPattern
}

// NewIndexer creates an Indexer with the given similarity thresholds and
// integration pattern catalog. Zero thresholds fall back to the defaults.
func NewIndexer(thresholds docgraph.Thresholds, patterns []*docgraph.IntegrationPattern, logger *slog.Logger) *Indexer {
	if thresholds == (docgraph.Thresholds{}) {
		thresholds = docgraph.DefaultThresholds()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{
		thresholds:    thresholds,
		logger:        logger,
		endpoints:     make(map[string]*docgraph.IndexedEndpoint),
		schemas:       make(map[string]*docgraph.IndexedSchema),
		examples:      make(map[string]*docgraph.IndexedCodeExample),
		concepts:      make(map[string]*docgraph.IndexedConcept),
		relationships: make(map[string]*docgraph.Relationship),
		patterns:      patterns,
	}
}

// IndexBatch materializes analytical records for every item and then runs
// one relationship-building pass over the whole index. Invalid items are
// logged and skipped; one bad item never aborts the batch.
func (ix *Indexer) IndexBatch(items []Item) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for _, item := range items {
		if item.Content == nil || item.Source == "" {
			ix.logger.Warn("skipping invalid index item", "source", item.Source)
			continue
		}
		if err := item.Content.Validate(); err != nil {
			ix.logger.Warn("skipping invalid content", "source", item.Source, "error", err)
			continue
		}
		ix.indexItem(item.Source, item.Content)
	}

	ix.buildRelationships()
	ix.enrichPatterns()
}

// indexItem materializes the entities of one content item.
func (ix *Indexer) indexItem(source string, content *docgraph.CrawledContent) {
	for _, ep := range content.Endpoints {
		id := entityID("ep", source, ep.Method+" "+ep.Path)
		ix.endpoints[id] = &docgraph.IndexedEndpoint{
			ID:          id,
			Source:      source,
			Method:      strings.ToUpper(ep.Method),
			Path:        ep.Path,
			Summary:     ep.Summary,
			Description: ep.Description,
			Tags:        ep.Tags,
			SearchText:  normalize(ep.Method, ep.Path, ep.Summary, ep.Description, strings.Join(ep.Tags, " ")),
		}
	}

	for _, sc := range content.Schemas {
		id := entityID("sc", source, sc.Name)
		ix.schemas[id] = &docgraph.IndexedSchema{
			ID:          id,
			Source:      source,
			Name:        sc.Name,
			Properties:  sc.Properties,
			Description: sc.Description,
			SearchText:  normalize(sc.Name, strings.Join(sc.Properties, " "), sc.Description),
		}
	}

	for _, ex := range content.Examples {
		id := entityID("ex", source, ex.Language+" "+ex.Title+" "+head(ex.Code, 40))
		ix.examples[id] = &docgraph.IndexedCodeExample{
			ID:          id,
			Source:      source,
			Language:    ex.Language,
			Title:       ex.Title,
			Code:        ex.Code,
			Description: ex.Description,
			SearchText:  normalize(ex.Title, ex.Description, ex.Code),
		}
	}

	ix.extractConcepts(source, content)
}

// Stats returns aggregate counts over the index.
func (ix *Indexer) Stats() docgraph.IndexStats {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	return docgraph.IndexStats{
		Endpoints:     len(ix.endpoints),
		Schemas:       len(ix.schemas),
		Examples:      len(ix.examples),
		Concepts:      len(ix.concepts),
		Relationships: len(ix.relationships),
		Patterns:      len(ix.patterns),
	}
}

// Endpoint returns an indexed endpoint by ID.
func (ix *Indexer) Endpoint(id string) (*docgraph.IndexedEndpoint, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	ep, ok := ix.endpoints[id]
	return ep, ok
}

// Schema returns an indexed schema by ID.
func (ix *Indexer) Schema(id string) (*docgraph.IndexedSchema, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	sc, ok := ix.schemas[id]
	return sc, ok
}

// Example returns an indexed code example by ID.
func (ix *Indexer) Example(id string) (*docgraph.IndexedCodeExample, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	ex, ok := ix.examples[id]
	return ex, ok
}

// Concept returns an indexed concept by name.
func (ix *Indexer) Concept(name string) (*docgraph.IndexedConcept, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	c, ok := ix.concepts[name]
	return c, ok
}

// Relationships returns all relationship edges, sorted by ID for
// deterministic output.
func (ix *Indexer) Relationships() []*docgraph.Relationship {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]*docgraph.Relationship, 0, len(ix.relationships))
	for _, rel := range ix.relationships {
		out = append(out, rel)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Patterns returns the integration pattern catalog.
func (ix *Indexer) Patterns() []*docgraph.IntegrationPattern {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return append([]*docgraph.IntegrationPattern(nil), ix.patterns...)
}

// entityID derives a deterministic ID from an entity's natural key, so
// re-indexing the same entity is idempotent.
func entityID(kind, source, key string) string {
	return fmt.Sprintf("%s-%016x", kind, xxhash.Sum64String(source+"|"+key))
}

// normalize joins fields into lowercase searchable text.
func normalize(fields ...string) string {
	return strings.ToLower(strings.Join(strings.Fields(strings.Join(fields, " ")), " "))
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
