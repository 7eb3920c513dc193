package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxhq/xpaf/core"
)

func TestQueryResultsCacheGetSet(t *testing.T) {
	cache := NewQueryResultsCache()
	_, ok := cache.Get("%t%")
	assert.False(t, ok)

	cache.Set("%t%", core.QueryResults{{Value: "v", OK: true}})
	got, ok := cache.Get("%t%")
	assert.True(t, ok)
	assert.Equal(t, "v", got[0].Value)
}

func TestQueryResultsCacheSetMany(t *testing.T) {
	cache := NewQueryResultsCache()
	cache.SetMany(map[string]core.QueryResults{
		"%g.a%": {{Value: "a", OK: true}},
		"%g.b%": {{Value: "b", OK: true}},
	})

	a, ok := cache.Get("%g.a%")
	assert.True(t, ok)
	assert.Equal(t, "a", a[0].Value)

	b, ok := cache.Get("%g.b%")
	assert.True(t, ok)
	assert.Equal(t, "b", b[0].Value)
}
