package bookmaking

import (
	"context"
	"fmt"
	"sort"

	"github.com/anchorlab/bookforge/cluster"
	"github.com/anchorlab/bookforge/store"
	"github.com/anchorlab/bookforge/vectormath"
)

// searchArchive embeds the query and runs a ranked store search. Without a
// store it returns the prepared query embedding.
func (t *Toolset) searchArchive(ctx context.Context, r *searchRequest) (any, error) {
	queryEmb, err := t.embed(ctx, r.Query)
	if err != nil {
		return nil, err
	}

	if t.store == nil {
		return map[string]any{
			"query":           r.Query,
			"query_embedding": queryEmb,
			"executed":        false,
			"note":            "no content store configured; query embedding prepared for external search",
		}, nil
	}

	limit := r.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	items, err := t.store.Search(ctx, queryEmb, r.Filters, limit)
	if err != nil {
		return nil, err
	}

	if t.keyword != nil {
		items, err = t.mergeKeywordHits(ctx, r.Query, queryEmb, items, limit)
		if err != nil {
			return nil, err
		}
	}

	return map[string]any{
		"query":    r.Query,
		"executed": true,
		"results":  items,
	}, nil
}

// mergeKeywordHits widens vector search recall with keyword index hits.
// Keyword-only hits are scored by cosine against the query embedding so
// the merged list ranks on one scale.
func (t *Toolset) mergeKeywordHits(ctx context.Context, query string, queryEmb []float32, items []store.Item, limit int) ([]store.Item, error) {
	hits, err := t.keyword.SearchText(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		seen[item.ID] = struct{}{}
	}

	for _, hit := range hits {
		if _, dup := seen[hit.ID]; dup {
			continue
		}
		score, err := vectormath.CosineSimilarity(queryEmb, hit.Embedding)
		if err != nil {
			return nil, fmt.Errorf("score keyword hit %s: %w", hit.ID, err)
		}
		hit.Score = score
		items = append(items, hit)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// clusterContent gathers embeddings by id or by query and delegates to the
// clustering service.
func (t *Toolset) clusterContent(ctx context.Context, r *clusterRequest) (any, error) {
	if t.store == nil {
		return nil, ErrNoStore
	}

	var items []store.Item
	var err error
	if len(r.ContentIDs) > 0 {
		items, err = t.store.Fetch(ctx, r.ContentIDs)
	} else {
		limit := r.Limit
		if limit <= 0 {
			limit = 50
		}
		var queryEmb []float32
		queryEmb, err = t.embed(ctx, r.Query)
		if err != nil {
			return nil, err
		}
		items, err = t.store.Search(ctx, queryEmb, nil, limit)
	}
	if err != nil {
		return nil, err
	}

	points := make([]cluster.Point, len(items))
	for i, item := range items {
		points[i] = cluster.Point{ID: item.ID, Embedding: item.Embedding, Metadata: item.Metadata}
	}

	result, err := cluster.Run(points, cluster.Options{
		MinClusterSize:   r.MinClusterSize,
		MaxClusters:      r.MaxClusters,
		ComputeCentroids: r.ComputeCentroids,
	})
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"point_count":   len(points),
		"cluster_count": len(result.Clusters),
		"clusters":      result.Clusters,
		"unclustered":   result.Unclustered,
	}, nil
}

// themeHarvest is the per-theme slice of a harvest result.
type themeHarvest struct {
	Theme    string       `json:"theme"`
	Passages []store.Item `json:"passages"`
}

// harvestPassages embeds every theme concurrently and collects the top
// passages per theme, deduplicating across themes (first theme wins).
// Without a store the prepared theme embeddings are reported instead.
func (t *Toolset) harvestPassages(ctx context.Context, r *harvestRequest) (any, error) {
	vectors, err := t.embedAll(ctx, r.Themes)
	if err != nil {
		return nil, err
	}

	perTheme := r.PerTheme
	if perTheme <= 0 {
		perTheme = DefaultPerTheme
	}

	if t.store == nil {
		return map[string]any{
			"themes":           r.Themes,
			"theme_embeddings": vectors,
			"per_theme":        perTheme,
			"executed":         false,
			"note":             "no content store configured; theme embeddings prepared for external harvest",
		}, nil
	}

	claimed := make(map[string]struct{})
	harvests := make([]themeHarvest, 0, len(r.Themes))
	total := 0

	for i, theme := range r.Themes {
		items, err := t.store.Search(ctx, vectors[i], nil, perTheme*candidateOversample)
		if err != nil {
			return nil, fmt.Errorf("theme %q: %w", theme, err)
		}

		kept := make([]store.Item, 0, perTheme)
		for _, item := range items {
			if _, taken := claimed[item.ID]; taken {
				continue
			}
			claimed[item.ID] = struct{}{}
			kept = append(kept, item)
			if len(kept) == perTheme {
				break
			}
		}

		harvests = append(harvests, themeHarvest{Theme: theme, Passages: kept})
		total += len(kept)
	}

	return map[string]any{
		"executed":       true,
		"themes":         harvests,
		"total_passages": total,
	}, nil
}

// connection is one discovered cross-link between two pieces of content.
type connection struct {
	A          string  `json:"a"`
	B          string  `json:"b"`
	Similarity float64 `json:"similarity"`
}

// discoverConnections scores pairwise similarity among the gathered items
// and returns the strongest links above the threshold.
func (t *Toolset) discoverConnections(ctx context.Context, r *discoverRequest) (any, error) {
	type node struct {
		id  string
		emb []float32
	}
	var nodes []node

	if len(r.ContentIDs) > 0 {
		if t.store == nil {
			return nil, ErrNoStore
		}
		items, err := t.store.Fetch(ctx, r.ContentIDs)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			nodes = append(nodes, node{id: item.ID, emb: item.Embedding})
		}
	}

	if len(r.Texts) > 0 {
		vectors, err := t.embedAll(ctx, r.Texts)
		if err != nil {
			return nil, err
		}
		for i, vec := range vectors {
			nodes = append(nodes, node{id: fmt.Sprintf("text_%d", i), emb: vec})
		}
	}

	minSim := r.MinSimilarity
	if minSim == 0 {
		minSim = DefaultMinSimilarity
	}
	limit := r.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	var connections []connection
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			sim, err := vectormath.CosineSimilarity(nodes[i].emb, nodes[j].emb)
			if err != nil {
				return nil, fmt.Errorf("%q and %q: %w", nodes[i].id, nodes[j].id, err)
			}
			if sim >= minSim {
				connections = append(connections, connection{A: nodes[i].id, B: nodes[j].id, Similarity: sim})
			}
		}
	}

	sort.SliceStable(connections, func(i, j int) bool {
		return connections[i].Similarity > connections[j].Similarity
	})
	if len(connections) > limit {
		connections = connections[:limit]
	}
	if connections == nil {
		connections = []connection{}
	}

	return map[string]any{
		"node_count":     len(nodes),
		"min_similarity": minSim,
		"connections":    connections,
	}, nil
}

// threadHop is one level of an expanded thread.
type threadHop struct {
	Depth int          `json:"depth"`
	Items []store.Item `json:"items"`
}

// expandThread walks nearest neighbors breadth-first from a seed, never
// revisiting an id. Without a store the prepared seed embedding is
// reported instead.
func (t *Toolset) expandThread(ctx context.Context, r *expandRequest) (any, error) {
	depth := r.Depth
	if depth <= 0 {
		depth = DefaultExpandDepth
	}
	width := r.Width
	if width <= 0 {
		width = DefaultExpandWidth
	}

	var seedEmb []float32
	seedLabel := r.SeedID

	if r.SeedID != "" {
		if t.store == nil {
			return nil, ErrNoStore
		}
		items, err := t.store.Fetch(ctx, []string{r.SeedID})
		if err != nil {
			return nil, err
		}
		seedEmb = items[0].Embedding
	} else {
		var err error
		seedEmb, err = t.embed(ctx, r.SeedText)
		if err != nil {
			return nil, err
		}
		seedLabel = "seed_text"
	}

	if t.store == nil {
		return map[string]any{
			"seed":           seedLabel,
			"seed_embedding": seedEmb,
			"depth":          depth,
			"width":          width,
			"executed":       false,
			"note":           "no content store configured; seed embedding prepared for external expansion",
		}, nil
	}

	visited := map[string]struct{}{}
	if r.SeedID != "" {
		visited[r.SeedID] = struct{}{}
	}

	frontier := [][]float32{seedEmb}
	var hops []threadHop

	for d := 1; d <= depth && len(frontier) > 0; d++ {
		var next [][]float32
		var level []store.Item

		for _, emb := range frontier {
			items, err := t.store.Search(ctx, emb, nil, width+len(visited))
			if err != nil {
				return nil, err
			}

			taken := 0
			for _, item := range items {
				if _, seen := visited[item.ID]; seen {
					continue
				}
				visited[item.ID] = struct{}{}
				level = append(level, item)
				next = append(next, item.Embedding)
				taken++
				if taken == width {
					break
				}
			}
		}

		if len(level) == 0 {
			break
		}
		hops = append(hops, threadHop{Depth: d, Items: level})
		frontier = next
	}

	return map[string]any{
		"seed":     seedLabel,
		"depth":    depth,
		"width":    width,
		"executed": true,
		"thread":   hops,
	}, nil
}
