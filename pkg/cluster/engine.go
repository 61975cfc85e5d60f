// Package cluster groups keywords by semantic similarity using one of three
// selectable algorithms: fixed-k partitioning, density-based grouping, or
// graph community detection over pairwise cosine similarity.
package cluster

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"seoscout/pkg/embed"
	"seoscout/pkg/provider"
	"seoscout/pkg/textutil"
)

// Method selects the clustering algorithm.
type Method string

const (
	MethodKMeans Method = "kmeans"
	MethodDBSCAN Method = "dbscan"
	MethodGraph  Method = "graph"
)

// Unclustered is the sentinel cluster id for noise points that fit no group.
const Unclustered = -1

// Assignment pairs a keyword with its cluster id and human-readable label.
// Every input keyword receives exactly one assignment per run; ids are dense
// non-negative integers except the Unclustered sentinel.
type Assignment struct {
	Keyword   provider.KeywordRecord `json:"keyword"`
	ClusterID int                    `json:"cluster_id"`
	Label     string                 `json:"cluster_label"`
}

// Engine runs keyword clustering over embeddings from the configured
// provider.
type Engine struct {
	embedder  embed.Provider
	simThresh float64 // graph edge threshold
	eps       float64 // dbscan neighborhood radius (cosine distance)
	minPoints int     // dbscan core point minimum
	log       zerolog.Logger
}

// NewEngine creates a clustering engine. A zero similarity threshold falls
// back to 0.7.
func NewEngine(embedder embed.Provider, simThreshold float64, log zerolog.Logger) *Engine {
	if simThreshold <= 0 || simThreshold >= 1 {
		simThreshold = 0.7
	}
	return &Engine{
		embedder:  embedder,
		simThresh: simThreshold,
		eps:       0.35,
		minPoints: 2,
		log:       log,
	}
}

// Cluster assigns every record to a group using the chosen method. It never
// propagates embedding or numerical failures: those degrade to a round-robin
// assignment logged as a data-quality warning, so callers always receive one
// assignment per input keyword.
func (e *Engine) Cluster(ctx context.Context, records []provider.KeywordRecord, method Method, nClustersHint int) []Assignment {
	if len(records) == 0 {
		e.log.Warn().Msg("cluster: empty keyword batch")
		return []Assignment{}
	}

	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = textutil.Normalize(r.Text)
	}

	ids, err := e.assign(ctx, texts, method, nClustersHint)
	if err != nil {
		e.log.Warn().Err(err).Str("method", string(method)).
			Msg("cluster: falling back to round-robin assignment")
		ids = roundRobin(len(records), defaultK(len(records), nClustersHint))
	}

	ids = densify(ids)
	labels := buildLabels(records, ids)

	assignments := make([]Assignment, len(records))
	for i, r := range records {
		assignments[i] = Assignment{
			Keyword:   r,
			ClusterID: ids[i],
			Label:     labels[ids[i]],
		}
	}
	return assignments
}

func (e *Engine) assign(ctx context.Context, texts []string, method Method, hint int) ([]int, error) {
	vectors, err := e.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed batch: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(texts))
	}

	switch method {
	case MethodDBSCAN:
		return dbscan(vectors, e.eps, e.minPoints), nil
	case MethodGraph:
		return graphCommunities(vectors, e.simThresh), nil
	case MethodKMeans, "":
		return kmeans(vectors, defaultK(len(texts), hint))
	default:
		return nil, fmt.Errorf("unknown clustering method %q", method)
	}
}

// defaultK derives the partition count when no hint is given:
// clamp(n/10, 3, 10), further capped at n.
func defaultK(n, hint int) int {
	k := hint
	if k <= 0 {
		k = n / 10
		if k < 3 {
			k = 3
		}
		if k > 10 {
			k = 10
		}
	}
	if k > n {
		k = n
	}
	return k
}

func roundRobin(n, k int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i % k
	}
	return ids
}

// densify remaps cluster ids to dense 0..k-1 in order of first appearance,
// preserving the Unclustered sentinel.
func densify(ids []int) []int {
	next := 0
	remap := map[int]int{}
	out := make([]int, len(ids))
	for i, id := range ids {
		if id == Unclustered {
			out[i] = Unclustered
			continue
		}
		dense, ok := remap[id]
		if !ok {
			dense = next
			remap[id] = dense
			next++
		}
		out[i] = dense
	}
	return out
}
