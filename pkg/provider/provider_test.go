package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupe(t *testing.T) {
	records := []KeywordRecord{
		{Text: "crm software", Volume: 100},
		{Text: "CRM Software", Volume: 50},
		{Text: " crm software ", Volume: 10},
		{Text: "ats tools", Volume: 80},
		{Text: ""},
		{Text: "   "},
	}

	got := Dedupe(records)
	require.Len(t, got, 2)
	assert.Equal(t, "crm software", got[0].Text)
	assert.Equal(t, 100, got[0].Volume)
	assert.Equal(t, "ats tools", got[1].Text)
}

func TestDedupeEmpty(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
}

// countingSERP records how often each query reaches the inner provider.
type countingSERP struct {
	calls   map[string]int
	results []SERPResult
	err     error
}

func (c *countingSERP) SERP(ctx context.Context, query string, numResults int) ([]SERPResult, error) {
	if c.calls == nil {
		c.calls = map[string]int{}
	}
	c.calls[query]++
	if c.err != nil {
		return nil, c.err
	}
	return c.results, nil
}

func TestCachedSERPHitsCache(t *testing.T) {
	inner := &countingSERP{results: []SERPResult{{Position: 1, URL: "https://example.com"}}}
	cached, err := NewCachedSERP(inner, 16)
	require.NoError(t, err)

	ctx := context.Background()
	first, err := cached.SERP(ctx, "crm software", 10)
	require.NoError(t, err)
	second, err := cached.SERP(ctx, "crm software", 10)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls["crm software"])
}

func TestCachedSERPKeyIncludesResultCount(t *testing.T) {
	inner := &countingSERP{results: []SERPResult{{Position: 1}}}
	cached, err := NewCachedSERP(inner, 16)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = cached.SERP(ctx, "crm software", 10)
	require.NoError(t, err)
	_, err = cached.SERP(ctx, "crm software", 50)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls["crm software"])
}

func TestCachedSERPDoesNotCacheErrors(t *testing.T) {
	inner := &countingSERP{err: errors.New("upstream down")}
	cached, err := NewCachedSERP(inner, 16)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = cached.SERP(ctx, "crm software", 10)
	require.Error(t, err)
	_, err = cached.SERP(ctx, "crm software", 10)
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls["crm software"])
}
