// Package vectormath provides the vector arithmetic primitives shared by
// every embedding-space component in this module.
//
// All similarity and aggregation math flows through this package so that
// refinement, between-anchor search, and clustering agree on a single
// definition of similarity.
//
// # Operations
//
//   - [Dot]: dot product of two equal-length vectors
//   - [Norm]: Euclidean norm of a vector
//   - [CosineSimilarity]: cosine of the angle between two vectors, in [-1, 1]
//   - [Centroid]: element-wise mean of a non-empty set of vectors
//
// # Errors
//
// The package defines these sentinel errors:
//   - [ErrDimensionMismatch]: vectors of unequal length were compared
//   - [ErrDegenerateVector]: a zero-norm vector cannot be normalized
//   - [ErrEmptyInput]: an aggregate was requested over no vectors
//
// Use errors.Is for error checking:
//
//	if errors.Is(err, vectormath.ErrDimensionMismatch) {
//	    // handle incompatible embeddings
//	}
package vectormath
