// Package docgraph provides a versioned documentation crawler with a
// cross-source relationship index. It fetches rendered documentation from a
// fixed set of configured source URLs, extracts structured facts (endpoints,
// schemas, code examples), persists them as versioned documents with a
// full-text search index, and builds an in-memory graph of cross-source
// similarity relationships and integration patterns.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/) or their
// domain role (crawl/, store/, index/, schedule/).
package docgraph
