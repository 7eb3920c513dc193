package parser

import "github.com/oxhq/xpaf/core"

// QueryResultsCache owns every core.QueryResults computed during one parse
// call, keyed by reference string. It ensures a query — including every
// subquery of a group, even when only one sibling is referenced by a
// template — is evaluated at most once per document: a group with k
// subqueries costs one DOM walk, not k, regardless of how many relation
// templates reference its subqueries.
//
// A QueryResultsCache is owned by, and lives no longer than, one Parse
// call; it must not be shared across concurrent parses.
type QueryResultsCache struct {
	entries map[string]core.QueryResults
}

// NewQueryResultsCache returns an empty cache.
func NewQueryResultsCache() *QueryResultsCache {
	return &QueryResultsCache{entries: make(map[string]core.QueryResults)}
}

// Get returns the cached results for key, if present.
func (c *QueryResultsCache) Get(key string) (core.QueryResults, bool) {
	results, ok := c.entries[key]
	return results, ok
}

// Set inserts results under key, taking ownership of it for the cache's
// remaining lifetime.
func (c *QueryResultsCache) Set(key string, results core.QueryResults) {
	c.entries[key] = results
}

// SetMany inserts every entry of a whole grouped-query evaluation in one
// call, so every subquery's result list becomes cache-visible even for
// subqueries no template has referenced yet.
func (c *QueryResultsCache) SetMany(entries map[string]core.QueryResults) {
	for key, results := range entries {
		c.entries[key] = results
	}
}
