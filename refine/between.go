package refine

import (
	"math"
	"sort"

	"github.com/anchorlab/bookforge/anchor"
	"github.com/anchorlab/bookforge/vectormath"
)

// Default parameters for the between-anchors finder.
const (
	DefaultBalanceThreshold = 0.2
	DefaultBetweenLimit     = 10
)

// BetweenOptions configures the between-anchors finder.
type BetweenOptions struct {
	// BalanceThreshold is the maximum allowed |simA - simB| for a
	// candidate to count as between the two poles. Zero keeps only
	// exactly balanced candidates; negative means the default.
	BalanceThreshold float64

	// Limit caps the number of returned candidates.
	Limit int
}

// BetweenResult is a candidate that sits between two anchors.
type BetweenResult struct {
	Candidate
	SimilarityA float64 `json:"similarity_a"`
	SimilarityB float64 `json:"similarity_b"`
	Balance     float64 `json:"balance"`
	Combined    float64 `json:"combined"`
}

// Between returns candidates comparably close to both anchors: those whose
// similarity difference is within the balance threshold, ranked by the sum
// of the two similarities descending. Ties break by baseline score, then
// original order.
func Between(candidates []Candidate, a, b anchor.Anchor, opts BetweenOptions) ([]BetweenResult, error) {
	threshold := opts.BalanceThreshold
	if threshold < 0 {
		threshold = DefaultBalanceThreshold
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultBetweenLimit
	}

	kept := make([]BetweenResult, 0, len(candidates))
	for _, c := range candidates {
		simA, err := vectormath.CosineSimilarity(c.Embedding, a.Embedding)
		if err != nil {
			return nil, err
		}
		simB, err := vectormath.CosineSimilarity(c.Embedding, b.Embedding)
		if err != nil {
			return nil, err
		}

		balance := math.Abs(simA - simB)
		if balance > threshold {
			continue
		}

		kept = append(kept, BetweenResult{
			Candidate:   c,
			SimilarityA: simA,
			SimilarityB: simB,
			Balance:     balance,
			Combined:    simA + simB,
		})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Combined != kept[j].Combined {
			return kept[i].Combined > kept[j].Combined
		}
		return kept[i].Score > kept[j].Score
	})

	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept, nil
}

// PoleSimilarity returns the similarity between the two anchors themselves.
// Reported to callers as diagnostic context for a between-search.
func PoleSimilarity(a, b anchor.Anchor) (float64, error) {
	return vectormath.CosineSimilarity(a.Embedding, b.Embedding)
}

// InterpretPoleSimilarity describes what a pole similarity means for a
// between-search.
func InterpretPoleSimilarity(sim float64) string {
	switch {
	case sim >= 0.9:
		return "anchors are nearly identical; the between-search is nearly meaningless"
	case sim >= 0.6:
		return "anchors are closely related; expect a broad middle ground"
	case sim >= 0.3:
		return "anchors are distinct; candidates in the middle are meaningful bridges"
	default:
		return "anchors are strongly opposed; few candidates will balance both poles"
	}
}
