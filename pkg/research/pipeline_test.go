package research

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seoscout/pkg/classify"
	"seoscout/pkg/cluster"
	"seoscout/pkg/embed"
	"seoscout/pkg/provider"
)

func newTestPipeline() *Pipeline {
	engine := cluster.NewEngine(embed.NewFrequency(), 0.7, zerolog.Nop())
	assigner := classify.NewProfileAssigner([]classify.Profile{
		{Name: "recruiter", Markers: []string{"hiring", "ats", "candidates"}},
	}, nil)
	return New(engine, assigner, zerolog.Nop())
}

func TestClusterKeywordsEmptyBatch(t *testing.T) {
	p := newTestPipeline()
	assert.Empty(t, p.ClusterKeywords(context.Background(), nil, cluster.MethodKMeans, 0))
}

func TestClusterKeywordsDeduplicates(t *testing.T) {
	p := newTestPipeline()
	records := []provider.KeywordRecord{
		{Text: "hiring software", Volume: 100},
		{Text: "Hiring Software", Volume: 50},
		{Text: "  hiring software ", Volume: 10},
	}

	enriched := p.ClusterKeywords(context.Background(), records, cluster.MethodKMeans, 1)
	require.Len(t, enriched, 1)
	assert.Equal(t, 100, enriched[0].Keyword.Volume)
}

func TestClusterKeywordsEnriches(t *testing.T) {
	p := newTestPipeline()
	records := []provider.KeywordRecord{{Text: "how to improve hiring process"}}

	enriched := p.ClusterKeywords(context.Background(), records, cluster.MethodKMeans, 1)
	require.Len(t, enriched, 1)

	e := enriched[0]
	assert.Equal(t, classify.IntentInformational, e.Intent)
	assert.Equal(t, "recruiter", e.Profile)
	assert.Equal(t, "how to improve hiring process (informational, recruiter)", e.Label)
}

func TestClusterKeywordsAnnotatesClusterLabels(t *testing.T) {
	p := newTestPipeline()
	records := []provider.KeywordRecord{
		{Text: "gardening basics"},
		{Text: "gardening basics at home"},
	}

	enriched := p.ClusterKeywords(context.Background(), records, cluster.MethodKMeans, 1)
	require.Len(t, enriched, 2)

	// Both keywords share one cluster, so they share one annotated label.
	assert.Equal(t, enriched[0].Label, enriched[1].Label)
	assert.Contains(t, enriched[0].Label, "(informational, general)")
}
