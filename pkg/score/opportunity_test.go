package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpportunity(t *testing.T) {
	tests := []struct {
		name string
		in   ScoreInput
		want int
	}{
		{"baseline", ScoreInput{}, 50},
		{"featured snippet", ScoreInput{FeaturedSnippet: true}, 70},
		{"people also ask", ScoreInput{PeopleAlsoAsk: true}, 60},
		{"knowledge panel", ScoreInput{KnowledgePanel: true}, 35},
		{"local pack not ranking", ScoreInput{LocalPack: true}, 40},
		{"local pack while ranking", ScoreInput{LocalPack: true, AlreadyRanking: true}, 25},
		{"competitors", ScoreInput{CompetitorDomains: 3}, 65},
		{"already ranking", ScoreInput{AlreadyRanking: true}, 25},
		{"trend bonus", ScoreInput{HasTrend: true, TrendValue: 100}, 60},
		{"trend bonus capped", ScoreInput{HasTrend: true, TrendValue: 5000}, 80},
		{"negative trend ignored", ScoreInput{HasTrend: true, TrendValue: -50}, 50},
		{"trend value without flag ignored", ScoreInput{TrendValue: 200}, 50},
		{
			"clamped at 100",
			ScoreInput{FeaturedSnippet: true, PeopleAlsoAsk: true, CompetitorDomains: 8, HasTrend: true, TrendValue: 400},
			100,
		},
		{
			"combined",
			ScoreInput{FeaturedSnippet: true, KnowledgePanel: true, AlreadyRanking: true},
			30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Opportunity(tt.in))
		})
	}
}

func TestOpportunityBounds(t *testing.T) {
	inputs := []ScoreInput{
		{},
		{CompetitorDomains: 1000},
		{HasTrend: true, TrendValue: 1e9},
		{KnowledgePanel: true, LocalPack: true, AlreadyRanking: true},
		{FeaturedSnippet: true, PeopleAlsoAsk: true, KnowledgePanel: true, LocalPack: true},
	}
	for _, in := range inputs {
		got := Opportunity(in)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
	}
}

func TestOpportunityMonotonicity(t *testing.T) {
	base := ScoreInput{PeopleAlsoAsk: true, CompetitorDomains: 2}

	withSnippet := base
	withSnippet.FeaturedSnippet = true
	assert.Greater(t, Opportunity(withSnippet), Opportunity(base))

	ranking := base
	ranking.AlreadyRanking = true
	assert.Less(t, Opportunity(ranking), Opportunity(base))
}
