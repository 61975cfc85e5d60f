// Package track records the own domain's keyword rankings over time and
// identifies trending content opportunities from that history plus external
// trends data.
package track

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"seoscout/internal/store"
	"seoscout/pkg/provider"
)

// maxConcurrentLookups bounds the SERP fan-out when tracking rankings.
const maxConcurrentLookups = 8

// Tracker runs ranking and opportunity tracking for one domain.
type Tracker struct {
	domain     string
	serp       provider.SERPProvider
	trends     provider.TrendsProvider
	store      store.Store
	numResults int
	log        zerolog.Logger
}

// New creates a tracker. numResults controls how deep each SERP check goes;
// zero means 50.
func New(domain string, serp provider.SERPProvider, trends provider.TrendsProvider, st store.Store, numResults int, log zerolog.Logger) *Tracker {
	if numResults <= 0 {
		numResults = 50
	}
	return &Tracker{
		domain:     domain,
		serp:       serp,
		trends:     trends,
		store:      st,
		numResults: numResults,
		log:        log,
	}
}

// TrackRankings checks today's SERP position for each keyword with bounded
// concurrent fan-out and upserts the observations into the history store,
// deduplicated on (keyword, date). A failed lookup becomes a placeholder
// entry carrying its error; the batch always completes. Results come back in
// input keyword order.
func (t *Tracker) TrackRankings(ctx context.Context, keywords []string) ([]store.Ranking, error) {
	if len(keywords) == 0 {
		t.log.Warn().Msg("track: empty keyword list")
		return []store.Ranking{}, nil
	}

	today := time.Now().UTC().Format("2006-01-02")
	rankings := make([]store.Ranking, len(keywords))

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrentLookups)

	for i, kw := range keywords {
		wg.Add(1)
		go func(i int, kw string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			r := store.Ranking{
				Keyword:   kw,
				Date:      today,
				CheckedAt: time.Now().UTC(),
			}

			results, err := t.serp.SERP(ctx, kw, t.numResults)
			if err != nil {
				t.log.Warn().Err(err).Str("keyword", kw).Msg("track: ranking lookup failed")
				r.Err = err.Error()
			} else {
				r.Position = t.findPosition(results)
				r.InTop = r.Position > 0
			}
			rankings[i] = r
		}(i, kw)
	}
	wg.Wait()

	if err := t.store.UpsertRankings(ctx, rankings); err != nil {
		return rankings, err
	}
	return rankings, nil
}

func (t *Tracker) findPosition(results []provider.SERPResult) int {
	for i, r := range results {
		if r.Type != provider.SERPOrganic && r.Type != "" {
			continue
		}
		if matchesDomain(hostOf(r.URL), t.domain) {
			return i + 1
		}
	}
	return 0
}

// Volatility summarizes how much a keyword's ranking moved over a window.
type Volatility struct {
	Keyword         string  `json:"keyword"`
	Score           float64 `json:"volatility_score"` // 0-100
	StdDev          float64 `json:"std_dev"`
	MeanDailyChange float64 `json:"mean_daily_change"`
	DataPoints      int     `json:"data_points"`
}

// Volatilities computes a volatility score per keyword from stored history
// over the last days. Error-placeholder observations are excluded, and
// keywords with fewer than two usable observations are skipped.
func (t *Tracker) Volatilities(ctx context.Context, keywords []string, days int) (map[string]Volatility, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	out := map[string]Volatility{}
	for _, kw := range keywords {
		history, err := t.store.ListRankings(ctx, kw, since)
		if err != nil {
			return nil, err
		}
		history = successfulRankings(history)
		if len(history) < 2 {
			continue
		}
		out[kw] = volatilityOf(kw, history)
	}
	return out, nil
}

// successfulRankings drops observations that carry a lookup error; their
// zero positions are placeholders, not real movement.
func successfulRankings(history []store.Ranking) []store.Ranking {
	out := history[:0:0]
	for _, h := range history {
		if h.Err == "" {
			out = append(out, h)
		}
	}
	return out
}

// volatilityOf combines ranking standard deviation with the mean change
// between consecutive observations, scaled by 5 and capped at 100.
func volatilityOf(keyword string, history []store.Ranking) Volatility {
	n := float64(len(history))

	mean := 0.0
	for _, h := range history {
		mean += float64(h.Position)
	}
	mean /= n

	variance := 0.0
	for _, h := range history {
		d := float64(h.Position) - mean
		variance += d * d
	}
	stdDev := math.Sqrt(variance / n)

	changes := 0.0
	for i := 1; i < len(history); i++ {
		changes += math.Abs(float64(history[i].Position - history[i-1].Position))
	}
	meanChange := changes / (n - 1)

	s := (stdDev + meanChange) * 5
	if s > 100 {
		s = 100
	}

	return Volatility{
		Keyword:         keyword,
		Score:           s,
		StdDev:          stdDev,
		MeanDailyChange: meanChange,
		DataPoints:      len(history),
	}
}
