package docgraph

import (
	"context"
	"time"
)

// StoredDocument is the durable, versioned record of a source URL's content
// and its extracted entities. At most one StoredDocument exists per URL.
type StoredDocument struct {
	ID      string       `json:"id"`
	Source  string       `json:"source"`
	URL     string       `json:"url"`
	Title   string       `json:"title"`
	Content string       `json:"content"`
	Meta    DocumentMeta `json:"metadata"`

	Endpoints []Endpoint    `json:"endpoints,omitempty"`
	Schemas   []Schema      `json:"schemas,omitempty"`
	Examples  []CodeExample `json:"examples,omitempty"`
}

// Validate returns an error if the document contains invalid fields.
func (d *StoredDocument) Validate() error {
	if d.Source == "" {
		return Errorf(EINVALID, "document source required")
	}
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	return nil
}

// DocumentMeta holds bookkeeping metadata for a StoredDocument.
type DocumentMeta struct {
	ContentHash  string    `json:"contentHash"`
	Version      string    `json:"version"`
	Format       Format    `json:"format"`
	Size         int       `json:"size"`
	FirstCrawled time.Time `json:"firstCrawled"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

// DocumentVersion is one append-only history entry describing a prior state
// of a StoredDocument. Version chains are strictly increasing and never
// mutated once written.
type DocumentVersion struct {
	Version         string    `json:"version"`
	CreatedAt       time.Time `json:"createdAt"`
	ContentHash     string    `json:"contentHash"`
	Changes         []string  `json:"changes,omitempty"`
	PreviousVersion string    `json:"previousVersion,omitempty"`
}

// DocumentRepository persists documents, their version histories, and
// archived version snapshots. Implementations must make SaveDocument
// atomic: a failed save leaves any previously stored state intact.
type DocumentRepository interface {
	// SaveDocument creates or replaces a document keyed by its ID.
	SaveDocument(ctx context.Context, doc *StoredDocument) error

	// LoadDocument retrieves a document by ID.
	// Returns ENOTFOUND if the document does not exist.
	LoadDocument(ctx context.Context, id string) (*StoredDocument, error)

	// ListDocuments retrieves all stored documents.
	ListDocuments(ctx context.Context) ([]*StoredDocument, error)

	// DeleteDocument removes a document, its version history, and all of
	// its snapshots. Returns ENOTFOUND if the document does not exist.
	DeleteDocument(ctx context.Context, id string) error

	// SaveVersions replaces the version history of a document.
	SaveVersions(ctx context.Context, docID string, versions []*DocumentVersion) error

	// LoadVersions retrieves the version history of a document, oldest
	// first. A document with no history returns an empty slice.
	LoadVersions(ctx context.Context, docID string) ([]*DocumentVersion, error)

	// SaveSnapshot archives the full state of a document under a version
	// label.
	SaveSnapshot(ctx context.Context, docID, version string, doc *StoredDocument) error
}

// SearchQuery describes a full-text search over stored documents.
type SearchQuery struct {
	Query  string    `json:"query"`
	Source string    `json:"source,omitempty"`
	After  time.Time `json:"after,omitempty"`
	Before time.Time `json:"before,omitempty"`

	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// SearchResult is one ranked hit of a document search.
type SearchResult struct {
	Document *StoredDocument `json:"document"`
	Score    float64         `json:"score"`
	Snippet  string          `json:"snippet,omitempty"`
}

// StoreStats summarizes the state of the content store.
type StoreStats struct {
	Documents     int            `json:"documents"`
	BySource      map[string]int `json:"bySource"`
	Endpoints     int            `json:"endpoints"`
	Schemas       int            `json:"schemas"`
	Examples      int            `json:"examples"`
	TotalSize     int            `json:"totalSize"`
	LastUpdated   time.Time      `json:"lastUpdated"`
	IndexedTokens int            `json:"indexedTokens"`
}
