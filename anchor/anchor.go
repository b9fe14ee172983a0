package anchor

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/anchorlab/bookforge/vectormath"
)

// Error values for consistent error handling by callers.
var (
	ErrEmptyName      = errors.New("anchor name is empty")
	ErrEmptyEmbedding = errors.New("anchor embedding is empty")
	ErrInvalidKind    = errors.New("invalid anchor kind")
	ErrEmptySet       = errors.New("anchor set has no anchors")
)

// Kind classifies how an anchor was authored and how it is used.
type Kind string

const (
	// KindPositive marks an anchor content should move toward.
	KindPositive Kind = "positive"

	// KindNegative marks an anchor content should move away from.
	KindNegative Kind = "negative"

	// KindSynthetic marks an anchor synthesized from other embeddings,
	// e.g. a centroid of several exemplars or a cluster summary.
	KindSynthetic Kind = "synthetic"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindPositive, KindNegative, KindSynthetic:
		return true
	}
	return false
}

// Anchor is a named reference point in embedding space.
// The ID is assigned at creation and immutable.
type Anchor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Embedding []float32 `json:"embedding"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates an anchor with a fresh ID and the current creation time.
func New(name string, emb []float32, kind Kind) (Anchor, error) {
	if name == "" {
		return Anchor{}, ErrEmptyName
	}
	if len(emb) == 0 {
		return Anchor{}, fmt.Errorf("%w: %q", ErrEmptyEmbedding, name)
	}
	if !kind.Valid() {
		return Anchor{}, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	return Anchor{
		ID:        uuid.NewString(),
		Name:      name,
		Embedding: emb,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Synthesize builds a composite anchor from the centroid of the given
// exemplar embeddings. The result is tagged KindSynthetic.
func Synthesize(name string, embeddings [][]float32) (Anchor, error) {
	center, err := vectormath.Centroid(embeddings)
	if err != nil {
		return Anchor{}, err
	}
	return New(name, center, KindSynthetic)
}

// Set is a weighted combination of positive and negative poles used for
// refinement. Either pole may be empty, but not both. Order within each
// pole is preserved.
type Set struct {
	Positives []Anchor `json:"positives"`
	Negatives []Anchor `json:"negatives"`
}

// NewSet validates and builds an anchor set.
// All member embeddings must share one dimensionality.
func NewSet(positives, negatives []Anchor) (Set, error) {
	if len(positives) == 0 && len(negatives) == 0 {
		return Set{}, ErrEmptySet
	}

	dim := 0
	for _, a := range append(append([]Anchor{}, positives...), negatives...) {
		if len(a.Embedding) == 0 {
			return Set{}, fmt.Errorf("%w: %q", ErrEmptyEmbedding, a.Name)
		}
		if dim == 0 {
			dim = len(a.Embedding)
			continue
		}
		if len(a.Embedding) != dim {
			return Set{}, fmt.Errorf("%w: %d vs %d", vectormath.ErrDimensionMismatch, dim, len(a.Embedding))
		}
	}

	return Set{Positives: positives, Negatives: negatives}, nil
}

// Dimension returns the embedding dimensionality shared by the set.
func (s Set) Dimension() int {
	if len(s.Positives) > 0 {
		return len(s.Positives[0].Embedding)
	}
	if len(s.Negatives) > 0 {
		return len(s.Negatives[0].Embedding)
	}
	return 0
}
