package provider

import (
	"context"
	"errors"
	"strings"
)

// ErrUnavailable signals that an external data source or embedding backend
// cannot be reached. Callers substitute their fallback strategy instead of
// aborting the batch.
var ErrUnavailable = errors.New("provider unavailable")

// SERPType identifies the kind of a search result entry.
type SERPType string

const (
	SERPOrganic         SERPType = "organic"
	SERPFeaturedSnippet SERPType = "featured_snippet"
	SERPPeopleAlsoAsk   SERPType = "people_also_ask"
	SERPKnowledgePanel  SERPType = "knowledge_panel"
	SERPImagePack       SERPType = "image_pack"
	SERPVideo           SERPType = "video"
	SERPLocalPack       SERPType = "local_pack"
	SERPShopping        SERPType = "shopping"
	SERPTopStories      SERPType = "top_stories"
)

// KeywordRecord is the standardized keyword data model. Records come from an
// external data provider and are immutable once fetched.
type KeywordRecord struct {
	Text        string  `json:"keyword" db:"keyword"`
	Volume      int     `json:"volume" db:"volume"`
	CPC         float64 `json:"cpc" db:"cpc"`
	Competition float64 `json:"competition" db:"competition"`
}

// KeywordMetrics is the per-keyword lookup result.
type KeywordMetrics struct {
	Keyword     string  `json:"keyword"`
	Volume      int     `json:"volume"`
	CPC         float64 `json:"cpc"`
	Competition float64 `json:"competition"`
	Difficulty  int     `json:"difficulty"`
}

// SERPResult is one entry of a search engine results page.
type SERPResult struct {
	Position int      `json:"position"`
	URL      string   `json:"url"`
	Type     SERPType `json:"type"`
	Title    string   `json:"title"`
	Snippet  string   `json:"snippet"`
}

// TrendingQuery is one rising or top related query from a trends source.
type TrendingQuery struct {
	Query string  `json:"query"`
	Value float64 `json:"value"`
}

// RelatedQueries holds trends lookups for a seed keyword.
type RelatedQueries struct {
	Rising []TrendingQuery `json:"rising"`
	Top    []TrendingQuery `json:"top"`
}

// MetricsProvider looks up volume/CPC/competition estimates for keywords.
type MetricsProvider interface {
	KeywordMetrics(ctx context.Context, keyword string) (KeywordMetrics, error)
}

// OrganicProvider lists keywords a domain ranks for organically.
type OrganicProvider interface {
	OrganicKeywords(ctx context.Context, domain string, limit int) ([]KeywordRecord, error)
}

// SERPProvider fetches search engine results for a query.
type SERPProvider interface {
	SERP(ctx context.Context, query string, numResults int) ([]SERPResult, error)
}

// TrendsProvider fetches related trending queries for a seed keyword.
type TrendsProvider interface {
	RelatedQueries(ctx context.Context, seed string) (RelatedQueries, error)
}

// Dedupe removes records with duplicate keyword text, keeping the first
// occurrence. Comparison is case-insensitive on trimmed text.
func Dedupe(records []KeywordRecord) []KeywordRecord {
	seen := make(map[string]bool, len(records))
	out := records[:0:0]
	for _, r := range records {
		key := strings.ToLower(strings.TrimSpace(r.Text))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
