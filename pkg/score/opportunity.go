// Package score computes content opportunity scores and per-cluster top-N
// selections.
package score

// ScoreInput collects the observed SERP signals for one topic. Missing
// feature flags default to absent; TrendValue is only applied when HasTrend
// is set.
type ScoreInput struct {
	FeaturedSnippet   bool
	PeopleAlsoAsk     bool
	KnowledgePanel    bool
	LocalPack         bool
	CompetitorDomains int // distinct competitor domains ranking in top results
	AlreadyRanking    bool
	HasTrend          bool
	TrendValue        float64
}

// Opportunity computes a 0-100 suitability score for creating content on a
// topic. Weights are fixed: a winnable featured snippet raises the score,
// an owned knowledge panel or an existing ranking lowers it, trend strength
// adds up to 30 points. The result is clamped to [0, 100] for arbitrary
// inputs.
func Opportunity(in ScoreInput) int {
	score := 50.0

	if in.FeaturedSnippet {
		score += 20
	}
	if in.PeopleAlsoAsk {
		score += 10
	}
	if in.KnowledgePanel {
		score -= 15
	}
	if in.LocalPack && !in.AlreadyRanking {
		score -= 10
	}
	if in.CompetitorDomains > 0 {
		score += 5 * float64(in.CompetitorDomains)
	}
	if in.AlreadyRanking {
		score -= 25
	}
	if in.HasTrend {
		bonus := in.TrendValue / 10
		if bonus > 30 {
			bonus = 30
		}
		if bonus > 0 {
			score += bonus
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(score)
}
