package track

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"

	"seoscout/internal/store"
	"seoscout/pkg/provider"
	"seoscout/pkg/score"
)

// TrendingTopic is a rising query discovered from a seed keyword.
type TrendingTopic struct {
	Topic      string  `json:"topic"`
	TrendScore float64 `json:"trend_score"`
	Seed       string  `json:"seed_keyword"`
}

// Opportunity is one scored content opportunity.
type Opportunity struct {
	Topic          string   `json:"topic"`
	Score          int      `json:"score"`
	Features       []string `json:"features"`
	AlreadyRanking bool     `json:"already_ranking"`
	HasTrend       bool     `json:"has_trend"`
	TrendValue     float64  `json:"trend_value,omitempty"`
}

// TrendingTopics collects rising queries for each seed keyword,
// deduplicated by topic keeping the highest trend score, sorted descending.
// A failing seed lookup is logged and skipped.
func (t *Tracker) TrendingTopics(ctx context.Context, seeds []string) []TrendingTopic {
	best := map[string]TrendingTopic{}

	for _, seed := range seeds {
		related, err := t.trends.RelatedQueries(ctx, seed)
		if err != nil {
			t.log.Warn().Err(err).Str("seed", seed).Msg("track: trends lookup failed, skipping seed")
			continue
		}
		for _, q := range related.Rising {
			topic := TrendingTopic{Topic: q.Query, TrendScore: q.Value, Seed: seed}
			if cur, ok := best[q.Query]; !ok || topic.TrendScore > cur.TrendScore {
				best[q.Query] = topic
			}
		}
	}

	topics := make([]TrendingTopic, 0, len(best))
	for _, topic := range best {
		topics = append(topics, topic)
	}
	sort.SliceStable(topics, func(i, j int) bool {
		if topics[i].TrendScore == topics[j].TrendScore {
			return topics[i].Topic < topics[j].Topic
		}
		return topics[i].TrendScore > topics[j].TrendScore
	})
	return topics
}

// WeeklyOpportunities scores trending topics by their SERP features and
// trend strength, persists the run to the history store, and returns the
// top n. A topic whose SERP lookup fails is skipped; an empty topic set
// yields an empty slice.
func (t *Tracker) WeeklyOpportunities(ctx context.Context, seeds []string, topN int) ([]Opportunity, error) {
	if topN <= 0 {
		topN = 10
	}

	topics := t.TrendingTopics(ctx, seeds)
	if len(topics) == 0 {
		t.log.Warn().Msg("track: no trending topics found")
		return []Opportunity{}, nil
	}

	var opportunities []Opportunity
	for _, topic := range topics {
		results, err := t.serp.SERP(ctx, topic.Topic, 10)
		if err != nil {
			t.log.Warn().Err(err).Str("topic", topic.Topic).Msg("track: opportunity lookup failed, skipping")
			continue
		}

		opp := t.scoreTopic(topic, results)
		opportunities = append(opportunities, opp)
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].Score > opportunities[j].Score
	})
	if len(opportunities) > topN {
		opportunities = opportunities[:topN]
	}

	if err := t.saveRun(ctx, opportunities); err != nil {
		t.log.Warn().Err(err).Msg("track: persisting opportunity run failed")
	}
	return opportunities, nil
}

func (t *Tracker) scoreTopic(topic TrendingTopic, results []provider.SERPResult) Opportunity {
	in := score.ScoreInput{
		HasTrend:   true,
		TrendValue: topic.TrendScore,
	}

	var features []string
	seenFeature := map[provider.SERPType]bool{}
	competitorHosts := map[string]bool{}

	for _, r := range results {
		switch r.Type {
		case provider.SERPFeaturedSnippet:
			in.FeaturedSnippet = true
		case provider.SERPPeopleAlsoAsk:
			in.PeopleAlsoAsk = true
		case provider.SERPKnowledgePanel:
			in.KnowledgePanel = true
		case provider.SERPLocalPack:
			in.LocalPack = true
		}
		if r.Type != "" && r.Type != provider.SERPOrganic && !seenFeature[r.Type] {
			seenFeature[r.Type] = true
			features = append(features, string(r.Type))
		}
	}

	if pos := t.findPosition(results); pos > 0 {
		in.AlreadyRanking = true
	}
	for _, r := range results {
		if host := hostOf(r.URL); host != "" && !matchesDomain(host, t.domain) {
			competitorHosts[host] = true
		}
	}
	in.CompetitorDomains = len(competitorHosts)

	return Opportunity{
		Topic:          topic.Topic,
		Score:          score.Opportunity(in),
		Features:       features,
		AlreadyRanking: in.AlreadyRanking,
		HasTrend:       true,
		TrendValue:     topic.TrendScore,
	}
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}

// matchesDomain reports whether host is the domain itself or one of its
// subdomains. Plain substring matching would let "notexample.com" pass for
// "example.com".
func matchesDomain(host, domain string) bool {
	domain = strings.TrimPrefix(strings.ToLower(domain), "www.")
	return domain != "" && (host == domain || strings.HasSuffix(host, "."+domain))
}

func (t *Tracker) saveRun(ctx context.Context, opportunities []Opportunity) error {
	now := time.Now().UTC()
	runDate := now.Format("2006-01-02")

	runs := make([]store.OpportunityRun, len(opportunities))
	for i, o := range opportunities {
		runs[i] = store.OpportunityRun{
			RunDate:        runDate,
			Topic:          o.Topic,
			Score:          o.Score,
			Features:       o.Features,
			AlreadyRanking: o.AlreadyRanking,
			HasTrend:       o.HasTrend,
			TrendValue:     o.TrendValue,
			CreatedAt:      now,
		}
	}
	return t.store.SaveOpportunities(ctx, runs)
}
