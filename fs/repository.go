// Package fs provides a file-based implementation of
// docgraph.DocumentRepository: one JSON file per document, one per version
// history, and one per archived version snapshot.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docgraph"
)

// Ensure Repository implements docgraph.DocumentRepository at compile time.
var _ docgraph.DocumentRepository = (*Repository)(nil)

// Repository stores documents under a base directory:
//
//	documents/<id>.json
//	versions/<id>.json
//	snapshots/<id>/<version>.json
//
// Writes go to a temporary file first and are renamed into place, so a
// crashed write never leaves a truncated document behind.
type Repository struct {
	baseDir string
}

// NewRepository creates a Repository rooted at baseDir. The directory
// layout is created lazily on first save.
func NewRepository(baseDir string) *Repository {
	return &Repository{baseDir: baseDir}
}

func (r *Repository) documentPath(id string) string {
	return filepath.Join(r.baseDir, "documents", id+".json")
}

func (r *Repository) versionsPath(docID string) string {
	return filepath.Join(r.baseDir, "versions", docID+".json")
}

func (r *Repository) snapshotPath(docID, version string) string {
	return filepath.Join(r.baseDir, "snapshots", docID, version+".json")
}

// SaveDocument creates or replaces a document file.
func (r *Repository) SaveDocument(ctx context.Context, doc *docgraph.StoredDocument) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if doc.ID == "" {
		return docgraph.Errorf(docgraph.EINVALID, "document ID required")
	}
	return writeJSON(r.documentPath(doc.ID), doc)
}

// LoadDocument retrieves a document by ID.
func (r *Repository) LoadDocument(ctx context.Context, id string) (*docgraph.StoredDocument, error) {
	var doc docgraph.StoredDocument
	if err := readJSON(r.documentPath(id), &doc); err != nil {
		if os.IsNotExist(err) {
			return nil, docgraph.Errorf(docgraph.ENOTFOUND, "document %q not found", id)
		}
		return nil, err
	}
	return &doc, nil
}

// ListDocuments retrieves all stored documents.
func (r *Repository) ListDocuments(ctx context.Context) ([]*docgraph.StoredDocument, error) {
	dir := filepath.Join(r.baseDir, "documents")
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var docs []*docgraph.StoredDocument
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		var doc docgraph.StoredDocument
		if err := readJSON(filepath.Join(dir, entry.Name()), &doc); err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		docs = append(docs, &doc)
	}
	return docs, nil
}

// DeleteDocument removes a document, its version history, and its
// snapshots.
func (r *Repository) DeleteDocument(ctx context.Context, id string) error {
	if err := os.Remove(r.documentPath(id)); err != nil {
		if os.IsNotExist(err) {
			return docgraph.Errorf(docgraph.ENOTFOUND, "document %q not found", id)
		}
		return err
	}
	if err := os.Remove(r.versionsPath(id)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.RemoveAll(filepath.Join(r.baseDir, "snapshots", id))
}

// SaveVersions replaces the version history file of a document.
func (r *Repository) SaveVersions(ctx context.Context, docID string, versions []*docgraph.DocumentVersion) error {
	return writeJSON(r.versionsPath(docID), versions)
}

// LoadVersions retrieves the version history of a document, oldest first.
func (r *Repository) LoadVersions(ctx context.Context, docID string) ([]*docgraph.DocumentVersion, error) {
	var versions []*docgraph.DocumentVersion
	if err := readJSON(r.versionsPath(docID), &versions); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return versions, nil
}

// SaveSnapshot archives the full state of a document under a version label.
func (r *Repository) SaveSnapshot(ctx context.Context, docID, version string, doc *docgraph.StoredDocument) error {
	return writeJSON(r.snapshotPath(docID, version), doc)
}

// writeJSON marshals v and writes it atomically via temp file + rename.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
