// Package embed converts keyword strings into fixed-dimension numeric
// vectors. Two interchangeable strategies exist: a semantic provider backed
// by an embedding model endpoint, and a batch-local frequency provider used
// as the fallback. The strategy is chosen at construction time and never
// switches mid-batch.
package embed

import (
	"context"

	"gonum.org/v1/gonum/floats"
)

// Provider turns a batch of texts into one vector per input, preserving
// order. Vector dimensionality is fixed for a given provider instance within
// one call; frequency vectors are not comparable across separate calls.
type Provider interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// Cosine returns the cosine similarity of two equal-length vectors, 0 when
// either has zero norm.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}
