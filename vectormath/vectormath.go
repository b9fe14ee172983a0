package vectormath

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for consistent error handling.
var (
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	ErrDegenerateVector  = errors.New("zero-norm vector")
	ErrEmptyInput        = errors.New("empty input")
)

// Dot returns the dot product of two equal-length vectors.
func Dot(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum, nil
}

// Norm returns the Euclidean norm of a vector.
func Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// CosineSimilarity returns the cosine of the angle between a and b.
// The result is clamped to [-1, 1] to absorb floating-point drift.
func CosineSimilarity(a, b []float32) (float64, error) {
	dot, err := Dot(a, b)
	if err != nil {
		return 0, err
	}

	na := Norm(a)
	nb := Norm(b)
	if na == 0 || nb == 0 {
		return 0, ErrDegenerateVector
	}

	sim := dot / (na * nb)
	if sim > 1 {
		sim = 1
	} else if sim < -1 {
		sim = -1
	}
	return sim, nil
}

// Centroid returns the element-wise mean of the given vectors.
// All vectors must share the same length.
func Centroid(vectors [][]float32) ([]float32, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: no vectors", ErrEmptyInput)
	}

	dim := len(vectors[0])
	sums := make([]float64, dim)
	for _, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, dim, len(v))
		}
		for i, x := range v {
			sums[i] += float64(x)
		}
	}

	n := float64(len(vectors))
	mean := make([]float32, dim)
	for i, s := range sums {
		mean[i] = float32(s / n)
	}
	return mean, nil
}
