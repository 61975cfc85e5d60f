package cluster

import "seoscout/pkg/embed"

// graphCommunities builds a keyword graph with edges between pairs whose
// cosine similarity meets the threshold, then detects communities by greedy
// modularity maximization: start from singleton communities and repeatedly
// merge the connected pair with the largest modularity gain until no merge
// improves modularity. Each community becomes one cluster; isolated nodes
// end up as singleton clusters.
func graphCommunities(vectors [][]float64, threshold float64) []int {
	n := len(vectors)

	// comm[i] is node i's community; between[a][b] counts edges across
	// communities, degree[a] the summed node degree inside a.
	comm := make([]int, n)
	for i := range comm {
		comm[i] = i
	}
	between := make(map[int]map[int]int)
	degree := make(map[int]int)

	addEdge := func(a, b int) {
		if between[a] == nil {
			between[a] = map[int]int{}
		}
		if between[b] == nil {
			between[b] = map[int]int{}
		}
		between[a][b]++
		between[b][a]++
		degree[a]++
		degree[b]++
	}

	m := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if embed.Cosine(vectors[i], vectors[j]) >= threshold {
				addEdge(i, j)
				m++
			}
		}
	}
	if m == 0 {
		return comm // no edges, all singletons
	}

	m2 := float64(2 * m)

	for {
		bestA, bestB := -1, -1
		bestGain := 0.0
		for a, neighbors := range between {
			for b, eAB := range neighbors {
				if b <= a || eAB == 0 {
					continue
				}
				gain := float64(eAB)/float64(m) - 2*(float64(degree[a])/m2)*(float64(degree[b])/m2)
				if gain > bestGain {
					bestA, bestB, bestGain = a, b, gain
				}
			}
		}
		if bestA < 0 {
			break
		}
		merge(bestA, bestB, comm, between, degree)
	}

	ids := make([]int, n)
	copy(ids, comm)
	return ids
}

// merge folds community b into a, updating edge bookkeeping in place.
func merge(a, b int, comm []int, between map[int]map[int]int, degree map[int]int) {
	degree[a] += degree[b]

	for c, eBC := range between[b] {
		if c == a {
			continue
		}
		if between[a] == nil {
			between[a] = map[int]int{}
		}
		between[a][c] += eBC
		between[c][a] += eBC
		delete(between[c], b)
	}
	delete(between[a], b)
	delete(between, b)
	delete(degree, b)

	for i := range comm {
		if comm[i] == b {
			comm[i] = a
		}
	}
}
