package provider

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedSERP wraps a SERPProvider with an in-process LRU cache keyed by the
// exact query string and result count. The cache lives for one process run
// only; it avoids re-issuing identical lookups within a batch and is not a
// correctness dependency.
type CachedSERP struct {
	inner SERPProvider
	cache *lru.Cache[string, []SERPResult]
}

// NewCachedSERP wraps inner with a cache of the given size.
func NewCachedSERP(inner SERPProvider, size int) (*CachedSERP, error) {
	if size <= 0 {
		size = 256
	}
	cache, err := lru.New[string, []SERPResult](size)
	if err != nil {
		return nil, fmt.Errorf("create serp cache: %w", err)
	}
	return &CachedSERP{inner: inner, cache: cache}, nil
}

// SERP implements SERPProvider, consulting the cache first.
func (c *CachedSERP) SERP(ctx context.Context, query string, numResults int) ([]SERPResult, error) {
	key := fmt.Sprintf("%s|%d", query, numResults)
	if results, ok := c.cache.Get(key); ok {
		return results, nil
	}

	results, err := c.inner.SERP(ctx, query, numResults)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, results)
	return results, nil
}
