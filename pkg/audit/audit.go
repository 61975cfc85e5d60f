// Package audit analyzes competitor content: which keywords competitors rank
// for that the own domain does not, which SERP features appear for those
// keywords, and what a competitor page actually contains.
package audit

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"seoscout/pkg/provider"
	"seoscout/pkg/score"
)

// Auditor runs competitor audits for one own domain against a competitor
// list.
type Auditor struct {
	domain      string
	competitors []string
	organic     provider.OrganicProvider
	serp        provider.SERPProvider
	log         zerolog.Logger
}

// New creates an auditor. The SERP provider should usually be wrapped in
// provider.NewCachedSERP so repeated feature lookups within one run hit the
// cache.
func New(domain string, competitors []string, organic provider.OrganicProvider, serp provider.SERPProvider, log zerolog.Logger) *Auditor {
	return &Auditor{
		domain:      domain,
		competitors: competitors,
		organic:     organic,
		serp:        serp,
		log:         log,
	}
}

// GapKeyword is a keyword competitors rank for while the own domain does
// not, with the competitors holding the ranking.
type GapKeyword struct {
	provider.KeywordRecord
	Competitors []string `json:"competitors_ranking"`
}

// ContentGap lists keywords with at least minVolume volume that any
// competitor ranks for and the own domain does not. An empty competitor list
// yields an empty result and a warning; a failing competitor lookup is
// skipped and the rest of the audit proceeds.
func (a *Auditor) ContentGap(ctx context.Context, limit, minVolume int) []GapKeyword {
	if len(a.competitors) == 0 {
		a.log.Warn().Msg("audit: no competitors configured for content gap analysis")
		return []GapKeyword{}
	}

	own := map[string]bool{}
	ownKeywords, err := a.organic.OrganicKeywords(ctx, a.domain, limit)
	if err != nil {
		a.log.Warn().Err(err).Str("domain", a.domain).Msg("audit: own keyword lookup failed, treating as empty")
	}
	for _, r := range ownKeywords {
		own[strings.ToLower(r.Text)] = true
	}

	gaps := map[string]*GapKeyword{}
	var order []string

	for _, competitor := range a.competitors {
		records, err := a.organic.OrganicKeywords(ctx, competitor, limit)
		if err != nil {
			a.log.Warn().Err(err).Str("competitor", competitor).Msg("audit: competitor lookup failed, skipping")
			continue
		}

		for _, r := range records {
			key := strings.ToLower(r.Text)
			if own[key] || r.Volume < minVolume {
				continue
			}
			g, ok := gaps[key]
			if !ok {
				g = &GapKeyword{KeywordRecord: r}
				gaps[key] = g
				order = append(order, key)
			}
			g.Competitors = append(g.Competitors, competitor)
		}
	}

	out := make([]GapKeyword, 0, len(order))
	for _, key := range order {
		out = append(out, *gaps[key])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Volume > out[j].Volume })
	return out
}

// SERPFeatures is the per-keyword SERP feature analysis.
type SERPFeatures struct {
	Keyword         string   `json:"keyword"`
	FeaturedSnippet bool     `json:"featured_snippet"`
	PeopleAlsoAsk   bool     `json:"people_also_ask"`
	KnowledgePanel  bool     `json:"knowledge_panel"`
	ImagePack       bool     `json:"image_pack"`
	Video           bool     `json:"video"`
	LocalPack       bool     `json:"local_pack"`
	RankingDomains  []string `json:"ranking_domains"`
	AlreadyRanking  bool     `json:"already_ranking"`
	Opportunity     int      `json:"opportunity"`
	Err             string   `json:"error,omitempty"`
}

// AnalyzeSERPFeatures fetches the SERP for each keyword and derives feature
// flags, ranking domains and an opportunity score. A failed lookup becomes a
// placeholder entry with its error recorded; the batch continues.
func (a *Auditor) AnalyzeSERPFeatures(ctx context.Context, keywords []string, numResults int) []SERPFeatures {
	out := make([]SERPFeatures, 0, len(keywords))

	for _, kw := range keywords {
		results, err := a.serp.SERP(ctx, kw, numResults)
		if err != nil {
			a.log.Warn().Err(err).Str("keyword", kw).Msg("audit: serp lookup failed")
			out = append(out, SERPFeatures{Keyword: kw, Err: err.Error()})
			continue
		}
		out = append(out, a.featuresFor(kw, results))
	}
	return out
}

func (a *Auditor) featuresFor(keyword string, results []provider.SERPResult) SERPFeatures {
	f := SERPFeatures{Keyword: keyword}
	seen := map[string]bool{}

	for _, r := range results {
		switch r.Type {
		case provider.SERPFeaturedSnippet:
			f.FeaturedSnippet = true
		case provider.SERPPeopleAlsoAsk:
			f.PeopleAlsoAsk = true
		case provider.SERPKnowledgePanel:
			f.KnowledgePanel = true
		case provider.SERPImagePack:
			f.ImagePack = true
		case provider.SERPVideo:
			f.Video = true
		case provider.SERPLocalPack:
			f.LocalPack = true
		}

		host := hostOf(r.URL)
		if host == "" {
			continue
		}
		if matchesDomain(host, a.domain) {
			f.AlreadyRanking = true
			continue
		}
		if !seen[host] {
			seen[host] = true
			f.RankingDomains = append(f.RankingDomains, host)
		}
	}

	competitorCount := 0
	for _, c := range a.competitors {
		for _, host := range f.RankingDomains {
			if matchesDomain(host, c) {
				competitorCount++
				break
			}
		}
	}

	f.Opportunity = score.Opportunity(score.ScoreInput{
		FeaturedSnippet:   f.FeaturedSnippet,
		PeopleAlsoAsk:     f.PeopleAlsoAsk,
		KnowledgePanel:    f.KnowledgePanel,
		LocalPack:         f.LocalPack,
		CompetitorDomains: competitorCount,
		AlreadyRanking:    f.AlreadyRanking,
	})
	return f
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
