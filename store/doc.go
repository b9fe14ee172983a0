// Package store defines the content/search store boundary consumed by the
// bookmaking engine, plus reference implementations for local use.
//
// The engine only requires the [Searcher] and [Fetcher] contracts: ranked
// vector search over a corpus and retrieval by id. Production deployments
// point these at an external service; [Memory] provides an exact in-memory
// implementation, and [Keyword] adds a Bleve-backed full-text index on top
// of a Memory store for keyword queries.
//
// # Thread safety
//
// [Memory] guards its state with a sync.RWMutex and is safe for concurrent
// use. [Keyword] inherits that safety; Bleve indexes are safe for
// concurrent readers and writers.
//
// # Determinism
//
// Memory search sorts by similarity descending with ties broken by
// insertion order, so identical corpora and queries always return
// identical rankings.
package store
