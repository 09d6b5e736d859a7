package mock

import (
	"context"

	"github.com/fwojciec/docgraph"
)

var _ docgraph.DocumentRepository = (*DocumentRepository)(nil)

// DocumentRepository is a mock implementation of
// docgraph.DocumentRepository.
type DocumentRepository struct {
	SaveDocumentFn   func(ctx context.Context, doc *docgraph.StoredDocument) error
	LoadDocumentFn   func(ctx context.Context, id string) (*docgraph.StoredDocument, error)
	ListDocumentsFn  func(ctx context.Context) ([]*docgraph.StoredDocument, error)
	DeleteDocumentFn func(ctx context.Context, id string) error
	SaveVersionsFn   func(ctx context.Context, docID string, versions []*docgraph.DocumentVersion) error
	LoadVersionsFn   func(ctx context.Context, docID string) ([]*docgraph.DocumentVersion, error)
	SaveSnapshotFn   func(ctx context.Context, docID, version string, doc *docgraph.StoredDocument) error
}

func (r *DocumentRepository) SaveDocument(ctx context.Context, doc *docgraph.StoredDocument) error {
	return r.SaveDocumentFn(ctx, doc)
}

func (r *DocumentRepository) LoadDocument(ctx context.Context, id string) (*docgraph.StoredDocument, error) {
	return r.LoadDocumentFn(ctx, id)
}

func (r *DocumentRepository) ListDocuments(ctx context.Context) ([]*docgraph.StoredDocument, error) {
	return r.ListDocumentsFn(ctx)
}

func (r *DocumentRepository) DeleteDocument(ctx context.Context, id string) error {
	return r.DeleteDocumentFn(ctx, id)
}

func (r *DocumentRepository) SaveVersions(ctx context.Context, docID string, versions []*docgraph.DocumentVersion) error {
	return r.SaveVersionsFn(ctx, docID, versions)
}

func (r *DocumentRepository) LoadVersions(ctx context.Context, docID string) ([]*docgraph.DocumentVersion, error) {
	return r.LoadVersionsFn(ctx, docID)
}

func (r *DocumentRepository) SaveSnapshot(ctx context.Context, docID, version string, doc *docgraph.StoredDocument) error {
	return r.SaveSnapshotFn(ctx, docID, version, doc)
}
