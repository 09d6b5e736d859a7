// Package store implements the versioned content store. Documents are
// persisted through a DocumentRepository; an in-memory inverted index over
// their searchable text supports full-text search and is rebuilt from the
// repository at startup.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/docgraph"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// rebuildConcurrency bounds the tokenization workers during Rebuild.
const rebuildConcurrency = 8

// Store holds the in-memory view of all stored documents plus the inverted
// search index. All mutations go through the repository first: a failed
// persist leaves the in-memory state untouched.
type Store struct {
	repo   docgraph.DocumentRepository
	logger *slog.Logger

	mu    sync.RWMutex
	byID  map[string]*docgraph.StoredDocument
	byURL map[string]string // URL -> document ID
	index *invertedIndex
}

// NewStore creates a Store backed by the given repository.
func NewStore(repo docgraph.DocumentRepository, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		repo:   repo,
		logger: logger,
		byID:   make(map[string]*docgraph.StoredDocument),
		byURL:  make(map[string]string),
		index:  newInvertedIndex(),
	}
}

// Put stores crawled content for a logical source. It deduplicates by
// content hash: unchanged content is an idempotent no-op, changed content
// snapshots the prior state into the version history and bumps the patch
// version. The returned document is a copy safe for the caller to hold.
func (s *Store) Put(ctx context.Context, source string, content *docgraph.CrawledContent) (*docgraph.StoredDocument, error) {
	if err := content.Validate(); err != nil {
		return nil, err
	}
	if source == "" {
		return nil, docgraph.Errorf(docgraph.EINVALID, "source required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hash := Hash(content.Text)

	id, exists := s.byURL[content.URL]
	if !exists {
		return s.create(ctx, source, content, hash)
	}

	doc := s.byID[id]
	if doc.Meta.ContentHash == hash {
		// Unchanged content: never spuriously duplicated.
		return clone(doc), nil
	}

	return s.update(ctx, doc, content, hash)
}

// create stores a brand-new document at version 1.0.0.
func (s *Store) create(ctx context.Context, source string, content *docgraph.CrawledContent, hash string) (*docgraph.StoredDocument, error) {
	now := time.Now().UTC()
	doc := &docgraph.StoredDocument{
		ID:      uuid.New().String(),
		Source:  source,
		URL:     content.URL,
		Title:   content.Title,
		Content: content.Text,
		Meta: docgraph.DocumentMeta{
			ContentHash:  hash,
			Version:      "1.0.0",
			Format:       content.Format,
			Size:         len(content.Text),
			FirstCrawled: now,
			LastUpdated:  now,
		},
		Endpoints: content.Endpoints,
		Schemas:   content.Schemas,
		Examples:  content.Examples,
	}
	assignEntityIDs(doc)

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.SaveDocument(ctx, doc); err != nil {
		return nil, err
	}

	s.byID[doc.ID] = doc
	s.byURL[doc.URL] = doc.ID
	s.index.add(doc.ID, searchText(doc))

	return clone(doc), nil
}

// update snapshots the current state into the version history, bumps the
// patch version, and updates the document in place.
func (s *Store) update(ctx context.Context, old *docgraph.StoredDocument, content *docgraph.CrawledContent, hash string) (*docgraph.StoredDocument, error) {
	versions, err := s.repo.LoadVersions(ctx, old.ID)
	if err != nil {
		return nil, err
	}

	var previous string
	if n := len(versions); n > 0 {
		previous = versions[n-1].Version
	}
	versions = append(versions, &docgraph.DocumentVersion{
		Version:         old.Meta.Version,
		CreatedAt:       old.Meta.LastUpdated,
		ContentHash:     old.Meta.ContentHash,
		Changes:         detectChanges(old, content),
		PreviousVersion: previous,
	})

	next := clone(old)
	next.Title = content.Title
	next.Content = content.Text
	next.Meta.ContentHash = hash
	next.Meta.Version = bumpPatch(old.Meta.Version)
	next.Meta.Format = content.Format
	next.Meta.Size = len(content.Text)
	next.Meta.LastUpdated = time.Now().UTC()
	next.Endpoints = content.Endpoints
	next.Schemas = content.Schemas
	next.Examples = content.Examples
	assignEntityIDs(next)

	// Archive the outgoing state before replacing it.
	if err := s.repo.SaveSnapshot(ctx, old.ID, old.Meta.Version, old); err != nil {
		return nil, err
	}
	if err := s.repo.SaveVersions(ctx, old.ID, versions); err != nil {
		return nil, err
	}
	if err := s.repo.SaveDocument(ctx, next); err != nil {
		return nil, err
	}

	s.index.remove(old.ID, searchText(old))
	s.byID[next.ID] = next
	s.index.add(next.ID, searchText(next))

	return clone(next), nil
}

// Get retrieves a document by ID.
func (s *Store) Get(id string) (*docgraph.StoredDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.byID[id]
	if !ok {
		return nil, docgraph.Errorf(docgraph.ENOTFOUND, "document %q not found", id)
	}
	return clone(doc), nil
}

// GetByURL retrieves a document by source URL.
func (s *Store) GetByURL(url string) (*docgraph.StoredDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byURL[url]
	if !ok {
		return nil, docgraph.Errorf(docgraph.ENOTFOUND, "no document for URL %q", url)
	}
	return clone(s.byID[id]), nil
}

// Versions returns the version history of a document, oldest first.
func (s *Store) Versions(ctx context.Context, id string) ([]*docgraph.DocumentVersion, error) {
	s.mu.RLock()
	_, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return nil, docgraph.Errorf(docgraph.ENOTFOUND, "document %q not found", id)
	}
	return s.repo.LoadVersions(ctx, id)
}

// Delete removes a document, its version history, and its index tokens.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.byID[id]
	if !ok {
		return docgraph.Errorf(docgraph.ENOTFOUND, "document %q not found", id)
	}

	if err := s.repo.DeleteDocument(ctx, id); err != nil {
		return err
	}

	s.index.remove(id, searchText(doc))
	delete(s.byURL, doc.URL)
	delete(s.byID, id)

	return nil
}

// Rebuild loads all documents from the repository and rebuilds the
// in-memory maps and inverted index. Called once at process startup; no
// separate on-disk search index exists.
func (s *Store) Rebuild(ctx context.Context) error {
	docs, err := s.repo.ListDocuments(ctx)
	if err != nil {
		return err
	}

	type tokenized struct {
		doc    *docgraph.StoredDocument
		tokens []string
	}

	resultCh := make(chan tokenized, len(docs))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(rebuildConcurrency)
	for _, doc := range docs {
		g.Go(func() error {
			resultCh <- tokenized{doc: doc, tokens: Tokenize(searchText(doc))}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	close(resultCh)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID = make(map[string]*docgraph.StoredDocument, len(docs))
	s.byURL = make(map[string]string, len(docs))
	s.index = newInvertedIndex()

	for r := range resultCh {
		s.byID[r.doc.ID] = r.doc
		s.byURL[r.doc.URL] = r.doc.ID
		s.index.addTokens(r.doc.ID, r.tokens)
	}

	s.logger.Info("store rebuilt", "documents", len(docs), "tokens", s.index.size())

	return nil
}

// Documents returns a snapshot of all stored documents.
func (s *Store) Documents() []*docgraph.StoredDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*docgraph.StoredDocument, 0, len(s.byID))
	for _, doc := range s.byID {
		out = append(out, clone(doc))
	}
	return out
}

// Stats returns aggregate counts over all stored documents.
func (s *Store) Stats() docgraph.StoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := docgraph.StoreStats{
		Documents:     len(s.byID),
		BySource:      make(map[string]int),
		IndexedTokens: s.index.size(),
	}
	for _, doc := range s.byID {
		stats.BySource[doc.Source]++
		stats.Endpoints += len(doc.Endpoints)
		stats.Schemas += len(doc.Schemas)
		stats.Examples += len(doc.Examples)
		stats.TotalSize += doc.Meta.Size
		if doc.Meta.LastUpdated.After(stats.LastUpdated) {
			stats.LastUpdated = doc.Meta.LastUpdated
		}
	}
	return stats
}

// clone returns a shallow copy of the document with copied entity slices,
// so callers can't mutate the store's view.
func clone(doc *docgraph.StoredDocument) *docgraph.StoredDocument {
	out := *doc
	out.Endpoints = append([]docgraph.Endpoint(nil), doc.Endpoints...)
	out.Schemas = append([]docgraph.Schema(nil), doc.Schemas...)
	out.Examples = append([]docgraph.CodeExample(nil), doc.Examples...)
	return &out
}
