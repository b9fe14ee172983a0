// Package bookmaking exposes the semantic-anchor engine as a set of named
// tool operations with a uniform result envelope.
//
// A [Toolset] binds an embedding provider and an optional content store to
// the engine packages (anchor, refine, cluster, textstat) and dispatches
// operations by name through [Toolset.Call]. Arguments are decoded into a
// closed set of typed request variants, one per operation, so malformed
// shapes are rejected before any embedding call.
//
// # Envelope
//
// Every call returns an mcp.CallToolResult: on success the payload is
// JSON-encoded into a single text content block; on failure the block
// carries {"error": message} and IsError is set. No operation error is
// ever surfaced as a Go error to transports, and nothing is retried
// internally.
//
// # Operations
//
// See [Catalog] for the full operation list with input schemas. Operations
// that need the content store (search, clustering by query, harvesting)
// execute fully when a store is configured and otherwise return their
// prepared embeddings, leaving execution to an external store.
//
// # Serving
//
// [ServeStdio], [ServeHTTP], and [ServeSSE] expose a Toolset as an MCP
// server speaking JSON-RPC (initialize, tools/list, tools/call).
package bookmaking
