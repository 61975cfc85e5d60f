// Package research wires the keyword pipeline: normalize, embed, cluster,
// then enrich each keyword with intent and audience profile. It is the pure
// transformation entry point consumed by the CLI report commands; it accepts
// injected keyword records and never fabricates metrics.
package research

import (
	"context"

	"github.com/rs/zerolog"

	"seoscout/pkg/classify"
	"seoscout/pkg/cluster"
	"seoscout/pkg/provider"
)

// EnrichedKeyword is a cluster assignment plus per-keyword enrichment.
type EnrichedKeyword struct {
	cluster.Assignment
	Intent  classify.Intent `json:"intent"`
	Profile string          `json:"user_profile"`
}

// Pipeline runs keyword clustering and enrichment.
type Pipeline struct {
	engine   *cluster.Engine
	assigner *classify.ProfileAssigner
	log      zerolog.Logger
}

// New creates a pipeline over the given cluster engine and profile assigner.
func New(engine *cluster.Engine, assigner *classify.ProfileAssigner, log zerolog.Logger) *Pipeline {
	return &Pipeline{engine: engine, assigner: assigner, log: log}
}

// ClusterKeywords deduplicates the batch, clusters it with the chosen method
// and enriches every keyword. Cluster labels gain a majority-intent and
// majority-profile annotation. An empty batch returns an empty slice with a
// warning, never an error.
func (p *Pipeline) ClusterKeywords(ctx context.Context, records []provider.KeywordRecord, method cluster.Method, nClustersHint int) []EnrichedKeyword {
	records = provider.Dedupe(records)
	if len(records) == 0 {
		p.log.Warn().Msg("research: empty keyword batch, returning empty result")
		return []EnrichedKeyword{}
	}

	assignments := p.engine.Cluster(ctx, records, method, nClustersHint)

	enriched := make([]EnrichedKeyword, len(assignments))
	for i, a := range assignments {
		enriched[i] = EnrichedKeyword{
			Assignment: a,
			Intent:     classify.ClassifyIntent(a.Keyword.Text),
			Profile:    p.assigner.Assign(ctx, a.Keyword.Text),
		}
	}

	annotateLabels(enriched)
	return enriched
}

// annotateLabels rewrites each cluster's label with the majority intent and
// profile among its members.
func annotateLabels(enriched []EnrichedKeyword) {
	type tally struct {
		intents  map[classify.Intent]int
		profiles map[string]int
	}
	byCluster := map[int]*tally{}
	for _, e := range enriched {
		t, ok := byCluster[e.ClusterID]
		if !ok {
			t = &tally{intents: map[classify.Intent]int{}, profiles: map[string]int{}}
			byCluster[e.ClusterID] = t
		}
		t.intents[e.Intent]++
		t.profiles[e.Profile]++
	}

	annotated := map[int]string{}
	for i := range enriched {
		id := enriched[i].ClusterID
		label, ok := annotated[id]
		if !ok {
			t := byCluster[id]
			label = cluster.Annotate(enriched[i].Label, majorityKey(t.intents), majorityKey(t.profiles))
			annotated[id] = label
		}
		enriched[i].Label = label
	}
}

// majorityKey returns the most frequent key, ties broken lexicographically
// so annotation is deterministic.
func majorityKey[K ~string](counts map[K]int) string {
	best := ""
	bestCount := 0
	for k, c := range counts {
		if c > bestCount || (c == bestCount && string(k) < best) {
			best = string(k)
			bestCount = c
		}
	}
	return best
}
