package internal

import (
	"testing"
	"time"

	"github.com/lychee-technology/schemalens"
	"github.com/stretchr/testify/assert"
)

func TestAnalyticsCacheEvictsOldest(t *testing.T) {
	c := newAnalyticsCache(2)
	first, second, third := &schemalens.AnalyticsResult{}, &schemalens.AnalyticsResult{}, &schemalens.AnalyticsResult{}

	c.put("a", first)
	c.put("b", second)
	c.put("a", first)
	c.put("c", third)

	_, ok := c.get("a")
	assert.False(t, ok)
	got, ok := c.get("c")
	assert.True(t, ok)
	assert.Same(t, third, got)
	assert.Equal(t, schemalens.CacheStats{Size: 2, Keys: []string{"b", "c"}}, c.stats())

	c.clear()
	assert.Equal(t, schemalens.CacheStats{Size: 0, Keys: []string{}}, c.stats())
}

func TestCacheKey(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	a := schemalens.Schema{ID: "b.json", Metadata: schemalens.SchemaMetadata{LastModified: at}}
	b := schemalens.Schema{ID: "a.json", Metadata: schemalens.SchemaMetadata{LastModified: at.Add(time.Second)}}

	key := cacheKey([]schemalens.Schema{a, b})
	assert.Equal(t, "a.json,b.json|"+"1740830401000", key)
	assert.Equal(t, key, cacheKey([]schemalens.Schema{b, a}))

	b.Metadata.LastModified = at.Add(time.Minute)
	assert.NotEqual(t, key, cacheKey([]schemalens.Schema{a, b}))

	assert.Equal(t, "|0", cacheKey(nil))
	assert.Equal(t, "x|0", cacheKey([]schemalens.Schema{{ID: "x"}}))
}
