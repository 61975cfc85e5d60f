package cluster

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

const (
	kmeansSeed    = 42
	kmeansMaxIter = 100
)

// kmeans partitions vectors into exactly k groups by iterative relocation
// (Lloyd's algorithm), minimizing within-group squared distance. The fixed
// seed makes assignment deterministic for a given batch.
func kmeans(vectors [][]float64, k int) ([]int, error) {
	n := len(vectors)
	if k <= 0 || k > n {
		return nil, fmt.Errorf("kmeans: k=%d out of range for %d points", k, n)
	}
	dim := len(vectors[0])
	for _, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("kmeans: inconsistent vector dimensions")
		}
	}

	rng := rand.New(rand.NewSource(kmeansSeed))

	// Seed centroids from a deterministic shuffle of the input points.
	perm := rng.Perm(n)
	centroids := make([][]float64, k)
	for i := 0; i < k; i++ {
		centroids[i] = append([]float64(nil), vectors[perm[i]]...)
	}

	ids := make([]int, n)
	for iter := 0; iter < kmeansMaxIter; iter++ {
		changed := false

		for i, v := range vectors {
			best := 0
			bestDist := math.Inf(1)
			for c, centroid := range centroids {
				if d := floats.Distance(v, centroid, 2); d < bestDist {
					best = c
					bestDist = d
				}
			}
			if ids[i] != best {
				ids[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		// Recompute centroids as member means.
		counts := make([]int, k)
		next := make([][]float64, k)
		for c := range next {
			next[c] = make([]float64, dim)
		}
		for i, v := range vectors {
			floats.Add(next[ids[i]], v)
			counts[ids[i]]++
		}
		for c := range next {
			if counts[c] == 0 {
				// Re-seed an emptied centroid with a deterministic point.
				next[c] = append([]float64(nil), vectors[rng.Intn(n)]...)
				continue
			}
			floats.Scale(1/float64(counts[c]), next[c])
		}
		centroids = next
	}

	return ids, nil
}
