package provider

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"seoscout/pkg/textutil"
)

// TrendsFeed is a named trends RSS/Atom feed URL, e.g. a Google Trends
// daily-trends feed for a locale.
type TrendsFeed struct {
	Name string
	URL  string
}

// RSSTrends implements TrendsProvider on top of trends RSS feeds.
type RSSTrends struct {
	client *http.Client
	parser *gofeed.Parser
	feeds  []TrendsFeed
}

// NewRSSTrends creates a trends provider reading the given feeds.
func NewRSSTrends(feeds []TrendsFeed) *RSSTrends {
	return &RSSTrends{
		client: &http.Client{Timeout: 30 * time.Second},
		parser: gofeed.NewParser(),
		feeds:  feeds,
	}
}

// RelatedQueries fetches all configured feeds and splits entries mentioning
// the seed into rising (published within the last 7 days) and top buckets.
func (r *RSSTrends) RelatedQueries(ctx context.Context, seed string) (RelatedQueries, error) {
	if len(r.feeds) == 0 {
		return RelatedQueries{}, fmt.Errorf("%w: no trends feeds configured", ErrUnavailable)
	}

	seedTokens := textutil.Tokenize(seed)
	cutoff := time.Now().Add(-7 * 24 * time.Hour)

	var out RelatedQueries
	var lastErr error

	for _, feed := range r.feeds {
		parsed, err := r.fetchFeed(ctx, feed)
		if err != nil {
			lastErr = err
			continue
		}

		for _, entry := range parsed.Items {
			if !mentionsSeed(entry.Title, seedTokens) {
				continue
			}

			q := TrendingQuery{
				Query: strings.TrimSpace(entry.Title),
				Value: trafficValue(entry),
			}

			published := time.Time{}
			if entry.PublishedParsed != nil {
				published = *entry.PublishedParsed
			}
			if !published.IsZero() && published.After(cutoff) {
				out.Rising = append(out.Rising, q)
			} else {
				out.Top = append(out.Top, q)
			}
		}
	}

	if len(out.Rising) == 0 && len(out.Top) == 0 && lastErr != nil {
		return RelatedQueries{}, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
	}

	sort.SliceStable(out.Rising, func(i, j int) bool { return out.Rising[i].Value > out.Rising[j].Value })
	sort.SliceStable(out.Top, func(i, j int) bool { return out.Top[i].Value > out.Top[j].Value })
	return out, nil
}

func (r *RSSTrends) fetchFeed(ctx context.Context, feed TrendsFeed) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create trends request %s: %w", feed.Name, err)
	}
	req.Header.Set("User-Agent", "seoscout/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch trends %s: %w", feed.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trends %s status %d", feed.Name, resp.StatusCode)
	}

	parsed, err := r.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse trends %s: %w", feed.Name, err)
	}
	return parsed, nil
}

func mentionsSeed(title string, seedTokens []string) bool {
	if len(seedTokens) == 0 {
		return true
	}
	lower := strings.ToLower(title)
	for _, tok := range seedTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// trafficValue reads the ht:approx_traffic extension Google Trends feeds
// carry ("20,000+"), falling back to 0 when absent.
func trafficValue(entry *gofeed.Item) float64 {
	ext, ok := entry.Extensions["ht"]
	if !ok {
		return 0
	}
	traffic, ok := ext["approx_traffic"]
	if !ok || len(traffic) == 0 {
		return 0
	}

	raw := strings.NewReplacer(",", "", "+", "").Replace(traffic[0].Value)
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}
