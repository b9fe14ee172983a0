package refine

import (
	"sort"

	"github.com/anchorlab/bookforge/anchor"
	"github.com/anchorlab/bookforge/vectormath"
)

// Candidate is one ranked search result supplied by the content store.
type Candidate struct {
	ID        string         `json:"id"`
	Embedding []float32      `json:"-"`
	Score     float64        `json:"score"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Scored is a candidate with its refined score and the affinities that
// produced it.
type Scored struct {
	Candidate
	Refined          float64 `json:"refined_score"`
	PositiveAffinity float64 `json:"positive_affinity"`
	NegativeAffinity float64 `json:"negative_affinity"`
}

// ByAnchors re-scores candidates against the anchor set and returns them
// sorted by refined score descending. Ties break by baseline score, then
// by original order. An empty candidate list returns an empty result.
func ByAnchors(candidates []Candidate, set anchor.Set) ([]Scored, error) {
	if len(candidates) == 0 {
		return []Scored{}, nil
	}

	scored := make([]Scored, len(candidates))
	for i, c := range candidates {
		pos, err := meanSimilarity(c.Embedding, set.Positives)
		if err != nil {
			return nil, err
		}
		neg, err := meanSimilarity(c.Embedding, set.Negatives)
		if err != nil {
			return nil, err
		}

		scored[i] = Scored{
			Candidate:        c,
			Refined:          pos - neg,
			PositiveAffinity: pos,
			NegativeAffinity: neg,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Refined != scored[j].Refined {
			return scored[i].Refined > scored[j].Refined
		}
		return scored[i].Score > scored[j].Score
	})

	return scored, nil
}

// meanSimilarity returns the mean cosine similarity of emb against the
// anchors, or 0 when the anchor list is empty.
func meanSimilarity(emb []float32, anchors []anchor.Anchor) (float64, error) {
	if len(anchors) == 0 {
		return 0, nil
	}

	var sum float64
	for _, a := range anchors {
		sim, err := vectormath.CosineSimilarity(emb, a.Embedding)
		if err != nil {
			return 0, err
		}
		sum += sim
	}
	return sum / float64(len(anchors)), nil
}
