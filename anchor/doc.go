// Package anchor defines semantic anchors: named reference points in
// embedding space, derived from exemplar text, used to steer retrieval.
//
// An [Anchor] pairs a name with an embedding and a [Kind] (positive,
// negative, or synthetic). A [Set] groups anchors into positive and
// negative poles for refinement scoring; order within each pole is
// preserved and used as a deterministic tie-break downstream.
//
// Anchors are transient values: the package holds no registry, and callers
// own any persistence. [Synthesize] builds a composite anchor from several
// exemplar embeddings via their centroid; the result is tagged
// [KindSynthetic] to distinguish it from user-authored anchors.
package anchor
