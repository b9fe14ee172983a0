package bookmaking

import (
	"context"
	"fmt"

	"github.com/anchorlab/bookforge/anchor"
	"github.com/anchorlab/bookforge/refine"
	"github.com/anchorlab/bookforge/store"
	"github.com/anchorlab/bookforge/vectormath"
)

// createAnchor embeds exemplar text and builds a named anchor.
func (t *Toolset) createAnchor(ctx context.Context, r *createAnchorRequest) (any, error) {
	kind := anchor.Kind(r.Kind)
	if r.Kind == "" {
		kind = anchor.KindPositive
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: kind must be positive, negative, or synthetic", ErrValidation)
	}

	emb, err := t.embed(ctx, r.Text)
	if err != nil {
		return nil, err
	}

	a, err := anchor.New(r.Name, emb, kind)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"anchor":    a,
		"dimension": len(a.Embedding),
	}, nil
}

// computeCentroid embeds each text and synthesizes a composite anchor at
// their centroid.
func (t *Toolset) computeCentroid(ctx context.Context, r *centroidRequest) (any, error) {
	vectors, err := t.embedAll(ctx, r.Texts)
	if err != nil {
		return nil, err
	}

	a, err := anchor.Synthesize(r.Name, vectors)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"anchor":       a,
		"source_count": len(r.Texts),
		"dimension":    len(a.Embedding),
	}, nil
}

// refineByAnchors embeds the query and exemplars, builds an anchor set,
// and re-ranks store results by refined score. Without a store it returns
// the prepared query embedding and anchor set.
func (t *Toolset) refineByAnchors(ctx context.Context, r *refineRequest) (any, error) {
	texts := make([]string, 0, 1+len(r.PositiveExamples)+len(r.NegativeExamples))
	texts = append(texts, r.Query)
	texts = append(texts, r.PositiveExamples...)
	texts = append(texts, r.NegativeExamples...)

	vectors, err := t.embedAll(ctx, texts)
	if err != nil {
		return nil, err
	}
	queryEmb := vectors[0]

	positives, err := buildAnchors(r.PositiveExamples, vectors[1:1+len(r.PositiveExamples)], anchor.KindPositive)
	if err != nil {
		return nil, err
	}
	negatives, err := buildAnchors(r.NegativeExamples, vectors[1+len(r.PositiveExamples):], anchor.KindNegative)
	if err != nil {
		return nil, err
	}

	set, err := anchor.NewSet(positives, negatives)
	if err != nil {
		return nil, err
	}

	limit := r.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	if t.store == nil {
		return map[string]any{
			"query":      r.Query,
			"anchor_set": set,
			"executed":   false,
			"note":       "no content store configured; anchor set prepared for external refinement",
		}, nil
	}

	items, err := t.store.Search(ctx, queryEmb, nil, limit*candidateOversample)
	if err != nil {
		return nil, err
	}

	scored, err := refine.ByAnchors(candidatesFromItems(items), set)
	if err != nil {
		return nil, err
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}

	return map[string]any{
		"query":    r.Query,
		"executed": true,
		"results":  scored,
	}, nil
}

// findBetweenAnchors embeds both exemplars, reports the anchor-to-anchor
// similarity with an interpretation, and, when a store is available, runs
// the between-finder on candidates near the two poles.
func (t *Toolset) findBetweenAnchors(ctx context.Context, r *betweenRequest) (any, error) {
	vectors, err := t.embedAll(ctx, []string{r.AnchorA.Text, r.AnchorB.Text})
	if err != nil {
		return nil, err
	}

	a, err := anchor.New(anchorName(r.AnchorA, "anchor_a"), vectors[0], anchor.KindPositive)
	if err != nil {
		return nil, err
	}
	b, err := anchor.New(anchorName(r.AnchorB, "anchor_b"), vectors[1], anchor.KindPositive)
	if err != nil {
		return nil, err
	}

	poleSim, err := refine.PoleSimilarity(a, b)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"anchor_a":        a.Name,
		"anchor_b":        b.Name,
		"pole_similarity": poleSim,
		"interpretation":  refine.InterpretPoleSimilarity(poleSim),
	}

	if t.store == nil {
		payload["executed"] = false
		return payload, nil
	}

	limit := r.Limit
	if limit <= 0 {
		limit = refine.DefaultBetweenLimit
	}
	threshold := refine.DefaultBalanceThreshold
	if r.BalanceThreshold != nil {
		threshold = *r.BalanceThreshold
	}

	// Candidates come from the midpoint of the two poles, so both sides
	// of the middle ground are represented.
	mid, err := vectormath.Centroid([][]float32{a.Embedding, b.Embedding})
	if err != nil {
		return nil, err
	}
	items, err := t.store.Search(ctx, mid, nil, limit*candidateOversample)
	if err != nil {
		return nil, err
	}

	results, err := refine.Between(candidatesFromItems(items), a, b, refine.BetweenOptions{
		BalanceThreshold: threshold,
		Limit:            limit,
	})
	if err != nil {
		return nil, err
	}

	payload["executed"] = true
	payload["results"] = results
	return payload, nil
}

// buildAnchors derives one anchor per exemplar text, preserving order.
func buildAnchors(texts []string, vectors [][]float32, kind anchor.Kind) ([]anchor.Anchor, error) {
	anchors := make([]anchor.Anchor, 0, len(texts))
	for i, text := range texts {
		a, err := anchor.New(truncate(text, 60), vectors[i], kind)
		if err != nil {
			return nil, err
		}
		anchors = append(anchors, a)
	}
	return anchors, nil
}

func anchorName(e exemplar, fallback string) string {
	if e.Name != "" {
		return e.Name
	}
	return fallback
}

func candidatesFromItems(items []store.Item) []refine.Candidate {
	candidates := make([]refine.Candidate, len(items))
	for i, item := range items {
		candidates[i] = refine.Candidate{
			ID:        item.ID,
			Embedding: item.Embedding,
			Score:     item.Score,
			Metadata:  item.Metadata,
		}
	}
	return candidates
}
