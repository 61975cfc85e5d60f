package embed

import (
	"context"
	"math"
	"sort"

	"seoscout/pkg/textutil"
)

// Frequency is the fallback embedding strategy: a TF-IDF vector space built
// over the current batch only. Dimensionality equals the batch vocabulary
// size, so vectors from different Embed calls live in different spaces.
type Frequency struct{}

// NewFrequency creates the frequency-based provider. It has no external
// dependencies and never fails to construct.
func NewFrequency() *Frequency { return &Frequency{} }

// Embed builds TF-IDF vectors for the batch. Output preserves input order
// and always has len(texts) entries; texts with no usable tokens get a zero
// vector.
func (f *Frequency) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	tokenized := make([][]string, len(texts))
	docFreq := map[string]int{}

	for i, t := range texts {
		tokenized[i] = textutil.Tokenize(t)
		seen := map[string]bool{}
		for _, tok := range tokenized[i] {
			if !seen[tok] {
				seen[tok] = true
				docFreq[tok]++
			}
		}
	}

	// Stable vocabulary order so identical batches produce identical vectors.
	vocab := make([]string, 0, len(docFreq))
	for term := range docFreq {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	index := make(map[string]int, len(vocab))
	for i, term := range vocab {
		index[term] = i
	}

	n := float64(len(texts))
	vectors := make([][]float64, len(texts))
	for i, tokens := range tokenized {
		vec := make([]float64, len(vocab))
		if len(tokens) > 0 {
			tf := map[string]float64{}
			for _, tok := range tokens {
				tf[tok]++
			}
			for term, count := range tf {
				idf := math.Log((1+n)/(1+float64(docFreq[term]))) + 1
				vec[index[term]] = (count / float64(len(tokens))) * idf
			}
		}
		vectors[i] = vec
	}

	return vectors, nil
}
