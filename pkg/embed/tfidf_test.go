package embed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencyEmbedShape(t *testing.T) {
	f := NewFrequency()
	texts := []string{"recruiting software", "python tutorial", "recruiting platform"}

	vectors, err := f.Embed(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, vectors, len(texts))

	dim := len(vectors[0])
	assert.Greater(t, dim, 0)
	for _, v := range vectors {
		assert.Len(t, v, dim)
	}
}

func TestFrequencyEmbedDeterministic(t *testing.T) {
	f := NewFrequency()
	texts := []string{"crm software pricing", "best crm tools", "crm software reviews"}

	a, err := f.Embed(context.Background(), texts)
	require.NoError(t, err)
	b, err := f.Embed(context.Background(), texts)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestFrequencyEmbedSimilarity(t *testing.T) {
	f := NewFrequency()
	vectors, err := f.Embed(context.Background(), []string{
		"recruiting software",
		"recruiting software",
		"python tutorial",
	})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, Cosine(vectors[0], vectors[1]), 1e-9)
	assert.InDelta(t, 0.0, Cosine(vectors[0], vectors[2]), 1e-9)
}

func TestFrequencyEmbedEmptyTokens(t *testing.T) {
	f := NewFrequency()
	vectors, err := f.Embed(context.Background(), []string{"the of a", "crm software"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)

	// Stopword-only text has no usable tokens and gets a zero vector.
	for _, x := range vectors[0] {
		assert.Zero(t, x)
	}
	assert.Zero(t, Cosine(vectors[0], vectors[1]))
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0},
		{"length mismatch", []float64{1}, []float64{1, 2}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-9)
		})
	}
}
