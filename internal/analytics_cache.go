package internal

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lychee-technology/schemalens"
)

// analyticsCache memoizes full analysis results by collection fingerprint.
// It holds at most maxEntries results and evicts the oldest insertion first.
type analyticsCache struct {
	mu         sync.RWMutex
	maxEntries int
	results    map[string]*schemalens.AnalyticsResult
	order      []string
}

func newAnalyticsCache(maxEntries int) *analyticsCache {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &analyticsCache{
		maxEntries: maxEntries,
		results:    make(map[string]*schemalens.AnalyticsResult),
	}
}

func (c *analyticsCache) get(key string) (*schemalens.AnalyticsResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result, ok := c.results[key]
	return result, ok
}

func (c *analyticsCache) put(key string, result *schemalens.AnalyticsResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.results[key]; !exists {
		c.order = append(c.order, key)
	}
	c.results[key] = result
	for len(c.order) > c.maxEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.results, oldest)
	}
}

func (c *analyticsCache) stats() schemalens.CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := append([]string(nil), c.order...)
	if keys == nil {
		keys = []string{}
	}
	return schemalens.CacheStats{Size: len(c.results), Keys: keys}
}

func (c *analyticsCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = make(map[string]*schemalens.AnalyticsResult)
	c.order = nil
}

// cacheKey fingerprints a collection: sorted schema ids joined by commas, then
// the latest lastModified across the set in Unix milliseconds.
func cacheKey(schemas []schemalens.Schema) string {
	ids := make([]string, len(schemas))
	var latest time.Time
	for i, s := range schemas {
		ids[i] = s.ID
		if s.Metadata.LastModified.After(latest) {
			latest = s.Metadata.LastModified
		}
	}
	sort.Strings(ids)
	var stamp int64
	if !latest.IsZero() {
		stamp = latest.UnixMilli()
	}
	return strings.Join(ids, ",") + "|" + strconv.FormatInt(stamp, 10)
}
