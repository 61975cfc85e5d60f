package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client talks to a SERP/keyword-data HTTP API. One client serves metrics,
// organic keyword and SERP lookups against the same endpoint.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates an API client for the given base URL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.baseURL == "" {
		return fmt.Errorf("%w: no endpoint configured", ErrUnavailable)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request %s: %w", path, err)
	}
	req.Header.Set("User-Agent", "seoscout/1.0")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: fetch %s: %v", ErrUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// KeywordMetrics implements MetricsProvider.
func (c *Client) KeywordMetrics(ctx context.Context, keyword string) (KeywordMetrics, error) {
	params := url.Values{"keyword": {keyword}}
	var m KeywordMetrics
	if err := c.get(ctx, "/v1/keywords/metrics", params, &m); err != nil {
		return KeywordMetrics{}, err
	}
	return m, nil
}

// OrganicKeywords implements OrganicProvider.
func (c *Client) OrganicKeywords(ctx context.Context, domain string, limit int) ([]KeywordRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	params := url.Values{
		"domain": {domain},
		"limit":  {strconv.Itoa(limit)},
	}
	var records []KeywordRecord
	if err := c.get(ctx, "/v1/domains/organic", params, &records); err != nil {
		return nil, err
	}
	return Dedupe(records), nil
}

// SERP implements SERPProvider.
func (c *Client) SERP(ctx context.Context, query string, numResults int) ([]SERPResult, error) {
	if numResults <= 0 {
		numResults = 10
	}
	params := url.Values{
		"q":   {query},
		"num": {strconv.Itoa(numResults)},
	}
	var results []SERPResult
	if err := c.get(ctx, "/v1/serp", params, &results); err != nil {
		return nil, err
	}
	return results, nil
}
