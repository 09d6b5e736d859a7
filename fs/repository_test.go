package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/docgraph"
	"github.com/fwojciec/docgraph/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument(id string) *docgraph.StoredDocument {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	return &docgraph.StoredDocument{
		ID:      id,
		Source:  "canvas",
		URL:     "https://canvas.example.com/api/" + id,
		Title:   "Canvas API",
		Content: "Course endpoints",
		Meta: docgraph.DocumentMeta{
			ContentHash:  "abc123",
			Version:      "1.0.0",
			Format:       docgraph.FormatAPIReference,
			Size:         16,
			FirstCrawled: now,
			LastUpdated:  now,
		},
		Endpoints: []docgraph.Endpoint{{Method: "GET", Path: "/courses", Summary: "List courses"}},
	}
}

func TestRepository_Documents(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a document", func(t *testing.T) {
		t.Parallel()

		repo := fs.NewRepository(t.TempDir())
		ctx := context.Background()
		doc := testDocument("doc-1")

		require.NoError(t, repo.SaveDocument(ctx, doc))

		got, err := repo.LoadDocument(ctx, "doc-1")
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("missing document returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		repo := fs.NewRepository(t.TempDir())
		_, err := repo.LoadDocument(context.Background(), "absent")
		require.Error(t, err)
		assert.Equal(t, docgraph.ENOTFOUND, docgraph.ErrorCode(err))
	})

	t.Run("lists all saved documents", func(t *testing.T) {
		t.Parallel()

		repo := fs.NewRepository(t.TempDir())
		ctx := context.Background()
		require.NoError(t, repo.SaveDocument(ctx, testDocument("doc-1")))
		require.NoError(t, repo.SaveDocument(ctx, testDocument("doc-2")))

		docs, err := repo.ListDocuments(ctx)
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("listing an empty base dir returns nothing", func(t *testing.T) {
		t.Parallel()

		repo := fs.NewRepository(filepath.Join(t.TempDir(), "never-created"))
		docs, err := repo.ListDocuments(context.Background())
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("rejects a document without an ID", func(t *testing.T) {
		t.Parallel()

		repo := fs.NewRepository(t.TempDir())
		doc := testDocument("x")
		doc.ID = ""
		err := repo.SaveDocument(context.Background(), doc)
		require.Error(t, err)
		assert.Equal(t, docgraph.EINVALID, docgraph.ErrorCode(err))
	})
}

func TestRepository_Versions(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a version history", func(t *testing.T) {
		t.Parallel()

		repo := fs.NewRepository(t.TempDir())
		ctx := context.Background()
		versions := []*docgraph.DocumentVersion{
			{Version: "1.0.0", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), ContentHash: "a"},
			{Version: "1.0.1", CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), ContentHash: "b", PreviousVersion: "1.0.0"},
		}

		require.NoError(t, repo.SaveVersions(ctx, "doc-1", versions))

		got, err := repo.LoadVersions(ctx, "doc-1")
		require.NoError(t, err)
		assert.Equal(t, versions, got)
	})

	t.Run("no history yields an empty slice", func(t *testing.T) {
		t.Parallel()

		repo := fs.NewRepository(t.TempDir())
		got, err := repo.LoadVersions(context.Background(), "doc-1")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestRepository_Delete(t *testing.T) {
	t.Parallel()

	t.Run("removes document, versions, and snapshots", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		repo := fs.NewRepository(dir)
		ctx := context.Background()
		doc := testDocument("doc-1")

		require.NoError(t, repo.SaveDocument(ctx, doc))
		require.NoError(t, repo.SaveVersions(ctx, "doc-1", []*docgraph.DocumentVersion{{Version: "1.0.0"}}))
		require.NoError(t, repo.SaveSnapshot(ctx, "doc-1", "1.0.0", doc))

		require.NoError(t, repo.DeleteDocument(ctx, "doc-1"))

		_, err := repo.LoadDocument(ctx, "doc-1")
		assert.Equal(t, docgraph.ENOTFOUND, docgraph.ErrorCode(err))
		versions, err := repo.LoadVersions(ctx, "doc-1")
		require.NoError(t, err)
		assert.Empty(t, versions)
		_, err = os.Stat(filepath.Join(dir, "snapshots", "doc-1"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("deleting a missing document returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		repo := fs.NewRepository(t.TempDir())
		err := repo.DeleteDocument(context.Background(), "absent")
		assert.Equal(t, docgraph.ENOTFOUND, docgraph.ErrorCode(err))
	})
}

func TestRepository_Snapshots(t *testing.T) {
	t.Parallel()

	t.Run("archives document state under a version label", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		repo := fs.NewRepository(dir)
		ctx := context.Background()
		doc := testDocument("doc-1")

		require.NoError(t, repo.SaveSnapshot(ctx, "doc-1", "1.0.0", doc))

		_, err := os.Stat(filepath.Join(dir, "snapshots", "doc-1", "1.0.0.json"))
		require.NoError(t, err)
	})
}
