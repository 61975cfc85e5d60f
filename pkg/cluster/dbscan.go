package cluster

import "seoscout/pkg/embed"

// dbscan groups points whose cosine distance is within eps of a core point
// having at least minPoints neighbors (itself included). Points reachable
// from no core point keep the Unclustered sentinel. The number of groups is
// data-dependent.
func dbscan(vectors [][]float64, eps float64, minPoints int) []int {
	n := len(vectors)
	ids := make([]int, n)
	for i := range ids {
		ids[i] = Unclustered
	}

	neighbors := func(i int) []int {
		var out []int
		for j := 0; j < n; j++ {
			if 1-embed.Cosine(vectors[i], vectors[j]) <= eps {
				out = append(out, j)
			}
		}
		return out
	}

	visited := make([]bool, n)
	cluster := 0

	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true

		seed := neighbors(i)
		if len(seed) < minPoints {
			continue // noise, possibly claimed by a later cluster expansion
		}

		ids[i] = cluster
		for idx := 0; idx < len(seed); idx++ {
			j := seed[idx]
			if ids[j] == Unclustered {
				ids[j] = cluster
			}
			if visited[j] {
				continue
			}
			visited[j] = true
			if more := neighbors(j); len(more) >= minPoints {
				seed = append(seed, more...)
			}
		}
		cluster++
	}

	return ids
}
