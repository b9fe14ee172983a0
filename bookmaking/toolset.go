package bookmaking

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/anchorlab/bookforge/embedding"
	"github.com/anchorlab/bookforge/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Default request parameters.
const (
	DefaultLimit         = 10
	DefaultPerTheme      = 5
	DefaultMinSimilarity = 0.75
	DefaultExpandDepth   = 2
	DefaultExpandWidth   = 5

	// candidateOversample widens store searches that feed a re-ranking
	// step, so refinement has more than `limit` candidates to reorder.
	candidateOversample = 3
)

// Config configures a Toolset.
type Config struct {
	// Embedder provides the external embedding capability. Required.
	// Wrap it in embedding.NewLazy to defer provider construction to
	// first use.
	Embedder embedding.Embedder

	// Store is the content/search store. Optional: operations that need
	// it either degrade to their preparation contract or fail with a
	// structured error, per operation.
	Store store.Store

	// Keyword enables keyword-query execution for operations that accept
	// a text query against the corpus. Optional.
	Keyword *store.Keyword

	// ServerInfo describes this server in the MCP initialize response.
	ServerInfo ServerInfo
}

// ServerInfo describes this MCP server for the initialize response.
type ServerInfo struct {
	Name    string
	Version string
}

// Toolset binds the engine packages to an embedding provider and an
// optional content store, and dispatches operations by name. It is
// stateless across calls and safe for concurrent use.
type Toolset struct {
	embedder embedding.Embedder
	store    store.Store
	keyword  *store.Keyword
	info     ServerInfo
}

// New creates a Toolset from the given config.
func New(cfg Config) (*Toolset, error) {
	if cfg.Embedder == nil {
		return nil, ErrNoEmbedder
	}

	info := cfg.ServerInfo
	if info.Name == "" {
		info.Name = "bookforge"
	}
	if info.Version == "" {
		info.Version = "dev"
	}

	return &Toolset{
		embedder: cfg.Embedder,
		store:    cfg.Store,
		keyword:  cfg.Keyword,
		info:     info,
	}, nil
}

// Call dispatches an operation by name. Every outcome, including argument
// and engine errors, is a uniform envelope; Call never returns a Go error.
func (t *Toolset) Call(ctx context.Context, op string, args map[string]any) *mcp.CallToolResult {
	req, err := parseRequest(op, args)
	if err != nil {
		return failureResult(err)
	}

	payload, err := t.dispatch(ctx, req)
	if err != nil {
		return failureResult(err)
	}
	return successResult(payload)
}

// dispatch routes a validated request to its handler.
func (t *Toolset) dispatch(ctx context.Context, req request) (any, error) {
	switch r := req.(type) {
	case *searchRequest:
		return t.searchArchive(ctx, r)
	case *clusterRequest:
		return t.clusterContent(ctx, r)
	case *createAnchorRequest:
		return t.createAnchor(ctx, r)
	case *refineRequest:
		return t.refineByAnchors(ctx, r)
	case *betweenRequest:
		return t.findBetweenAnchors(ctx, r)
	case *harvestRequest:
		return t.harvestPassages(ctx, r)
	case *discoverRequest:
		return t.discoverConnections(ctx, r)
	case *expandRequest:
		return t.expandThread(ctx, r)
	case *outlineRequest:
		return t.createOutline(ctx, r)
	case *composeRequest:
		return t.composeChapter(r)
	case *analyzeRequest:
		return t.analyzeStructure(r)
	case *suggestRequest:
		return t.suggestImprovements(r)
	case *extractRequest:
		return t.extractTerms(r)
	case *centroidRequest:
		return t.computeCentroid(ctx, r)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownOperation, req)
	}
}

// embed requests a single embedding.
func (t *Toolset) embed(ctx context.Context, text string) ([]float32, error) {
	return t.embedder.Embed(ctx, text)
}

// embedAll embeds independent texts concurrently. Results keep input
// order; the first failure cancels the rest.
func (t *Toolset) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	for i, text := range texts {
		g.Go(func() error {
			vec, err := t.embedder.Embed(gctx, text)
			if err != nil {
				return fmt.Errorf("embed %q: %w", truncate(text, 40), err)
			}
			vectors[i] = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
