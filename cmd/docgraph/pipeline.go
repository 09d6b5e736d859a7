package main

import (
	"context"

	"github.com/fwojciec/docgraph"
	"github.com/fwojciec/docgraph/crawl"
	"github.com/fwojciec/docgraph/index"
	"github.com/fwojciec/docgraph/store"
)

// Ensure Pipeline implements docgraph.JobRunner.
var _ docgraph.JobRunner = (*Pipeline)(nil)

// Pipeline executes one crawl job end to end: fetch and extract, persist
// into the versioned store, then fold the result into the relationship
// index.
type Pipeline struct {
	Crawler *crawl.Crawler
	Store   *store.Store
	Indexer *index.Indexer
}

// Run fetches the job's URL and routes the content through the store and
// the indexer. A configured format overrides URL-based detection.
func (p *Pipeline) Run(ctx context.Context, job *docgraph.CrawlerJob) error {
	var content *docgraph.CrawledContent
	var err error
	if job.Format != "" {
		content, err = p.Crawler.FetchAs(ctx, job.URL, job.Format)
	} else {
		content, err = p.Crawler.Fetch(ctx, job.URL)
	}
	if err != nil {
		return err
	}

	if _, err := p.Store.Put(ctx, job.Source, content); err != nil {
		return err
	}

	p.Indexer.IndexBatch([]index.Item{{Source: job.Source, Content: content}})
	return nil
}

// seedIndexer replays all stored documents into the indexer, so a fresh
// process answers explore queries before any crawl has run.
func seedIndexer(ix *index.Indexer, docs []*docgraph.StoredDocument) {
	items := make([]index.Item, 0, len(docs))
	for _, doc := range docs {
		items = append(items, index.Item{Source: doc.Source, Content: contentFromDocument(doc)})
	}
	ix.IndexBatch(items)
}

// contentFromDocument reconstructs the crawled shape of a stored document
// for re-indexing.
func contentFromDocument(doc *docgraph.StoredDocument) *docgraph.CrawledContent {
	return &docgraph.CrawledContent{
		URL:       doc.URL,
		Title:     doc.Title,
		Text:      doc.Content,
		Format:    doc.Meta.Format,
		FetchedAt: doc.Meta.LastUpdated,
		Endpoints: doc.Endpoints,
		Schemas:   doc.Schemas,
		Examples:  doc.Examples,
	}
}
