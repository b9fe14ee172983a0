// Package refine re-scores ranked candidate lists against semantic anchors.
//
// [ByAnchors] recomputes each candidate's score as its mean similarity to
// the positive pole minus its mean similarity to the negative pole of an
// [anchor.Set], then re-ranks. The transform is pure: it never fetches
// candidates, it only reorders what the caller supplies.
//
// [Between] selects candidates that sit "between" two anchors, meaning
// comparably close to both poles: a candidate is kept when the absolute
// difference of its two similarities is within a balance threshold, and
// kept candidates rank by the sum of the two similarities.
//
// Both transforms are deterministic. Ties break by the original baseline
// score, then by original input order (stable sort).
package refine
