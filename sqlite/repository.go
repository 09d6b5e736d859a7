package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/docgraph"
)

// Compile-time interface verification.
var _ docgraph.DocumentRepository = (*Repository)(nil)

// Repository implements docgraph.DocumentRepository using SQLite.
// Extracted entities and version histories are stored as JSON columns;
// the searchable fields get their own columns.
type Repository struct {
	db *DB
}

// NewRepository creates a new Repository.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// entities is the JSON shape of the extracted-entity column.
type entities struct {
	Endpoints []docgraph.Endpoint    `json:"endpoints,omitempty"`
	Schemas   []docgraph.Schema      `json:"schemas,omitempty"`
	Examples  []docgraph.CodeExample `json:"examples,omitempty"`
}

// SaveDocument creates or replaces a document row.
func (r *Repository) SaveDocument(ctx context.Context, doc *docgraph.StoredDocument) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if doc.ID == "" {
		return docgraph.Errorf(docgraph.EINVALID, "document ID required")
	}

	ents, err := json.Marshal(entities{
		Endpoints: doc.Endpoints,
		Schemas:   doc.Schemas,
		Examples:  doc.Examples,
	})
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO documents (id, source, url, title, content, content_hash, version, format, size, first_crawled, last_updated, entities)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source = excluded.source,
			url = excluded.url,
			title = excluded.title,
			content = excluded.content,
			content_hash = excluded.content_hash,
			version = excluded.version,
			format = excluded.format,
			size = excluded.size,
			first_crawled = excluded.first_crawled,
			last_updated = excluded.last_updated,
			entities = excluded.entities
	`, doc.ID, doc.Source, doc.URL, doc.Title, doc.Content,
		doc.Meta.ContentHash, doc.Meta.Version, string(doc.Meta.Format), doc.Meta.Size,
		doc.Meta.FirstCrawled.Format(time.RFC3339Nano), doc.Meta.LastUpdated.Format(time.RFC3339Nano),
		string(ents))

	return err
}

// LoadDocument retrieves a document by ID.
func (r *Repository) LoadDocument(ctx context.Context, id string) (*docgraph.StoredDocument, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, source, url, title, content, content_hash, version, format, size, first_crawled, last_updated, entities
		FROM documents
		WHERE id = ?
	`, id)

	doc, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, docgraph.Errorf(docgraph.ENOTFOUND, "document %q not found", id)
	}
	return doc, err
}

// ListDocuments retrieves all stored documents.
func (r *Repository) ListDocuments(ctx context.Context) ([]*docgraph.StoredDocument, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, source, url, title, content, content_hash, version, format, size, first_crawled, last_updated, entities
		FROM documents
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*docgraph.StoredDocument
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// DeleteDocument removes a document, its version history, and snapshots.
func (r *Repository) DeleteDocument(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return docgraph.Errorf(docgraph.ENOTFOUND, "document %q not found", id)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM versions WHERE doc_id = ?`, id); err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE doc_id = ?`, id)
	return err
}

// SaveVersions replaces the version history of a document.
func (r *Repository) SaveVersions(ctx context.Context, docID string, versions []*docgraph.DocumentVersion) error {
	data, err := json.Marshal(versions)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO versions (doc_id, data) VALUES (?, ?)
		ON CONFLICT(doc_id) DO UPDATE SET data = excluded.data
	`, docID, string(data))
	return err
}

// LoadVersions retrieves the version history of a document, oldest first.
func (r *Repository) LoadVersions(ctx context.Context, docID string) ([]*docgraph.DocumentVersion, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM versions WHERE doc_id = ?`, docID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var versions []*docgraph.DocumentVersion
	if err := json.Unmarshal([]byte(data), &versions); err != nil {
		return nil, fmt.Errorf("failed to parse version history: %w", err)
	}
	return versions, nil
}

// SaveSnapshot archives the full state of a document under a version label.
func (r *Repository) SaveSnapshot(ctx context.Context, docID, version string, doc *docgraph.StoredDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO snapshots (doc_id, version, data) VALUES (?, ?, ?)
		ON CONFLICT(doc_id, version) DO UPDATE SET data = excluded.data
	`, docID, version, string(data))
	return err
}

// scanDocument reads one document row via the given scan function.
func scanDocument(scan func(dest ...any) error) (*docgraph.StoredDocument, error) {
	var doc docgraph.StoredDocument
	var format, firstCrawled, lastUpdated, ents string

	err := scan(&doc.ID, &doc.Source, &doc.URL, &doc.Title, &doc.Content,
		&doc.Meta.ContentHash, &doc.Meta.Version, &format, &doc.Meta.Size,
		&firstCrawled, &lastUpdated, &ents)
	if err != nil {
		return nil, err
	}

	doc.Meta.Format = docgraph.Format(format)
	if doc.Meta.FirstCrawled, err = time.Parse(time.RFC3339Nano, firstCrawled); err != nil {
		return nil, fmt.Errorf("failed to parse first_crawled: %w", err)
	}
	if doc.Meta.LastUpdated, err = time.Parse(time.RFC3339Nano, lastUpdated); err != nil {
		return nil, fmt.Errorf("failed to parse last_updated: %w", err)
	}

	var e entities
	if err := json.Unmarshal([]byte(ents), &e); err != nil {
		return nil, fmt.Errorf("failed to parse entities: %w", err)
	}
	doc.Endpoints = e.Endpoints
	doc.Schemas = e.Schemas
	doc.Examples = e.Examples

	return &doc, nil
}
