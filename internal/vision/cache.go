package vision

import (
	"context"
	"sync"
	"time"

	applog "nutrigo/internal/log"
	"nutrigo/internal/nutrition"
)

// MealAnalysis is the multi-food result of analyzing one meal photograph.
type MealAnalysis struct {
	Foods       []AnalyzedFood `json:"foods"`
	Suggestions []string       `json:"suggestions"`
}

// AnalyzedFood is one detected food with its estimated serving.
type AnalyzedFood struct {
	Food              nutrition.Food `json:"food"`
	Confidence        float64        `json:"confidence"`
	EstimatedQuantity string         `json:"estimated_quantity"`
}

type cacheEntry struct {
	analysis MealAnalysis
	storedAt time.Time
}

// AnalysisCache maps an image fingerprint to a previously computed analysis.
// A hit avoids the generative call entirely, which is the primary cost
// control of the image path. Entries are immutable once stored; expiry is
// TTL-driven, not LRU.
type AnalysisCache struct {
	mu       sync.Mutex
	entries  map[string]cacheEntry
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

const (
	defaultTTL      = 24 * time.Hour
	defaultCapacity = 100
)

// NewAnalysisCache builds a cache with the given TTL and capacity;
// non-positive values fall back to the defaults (24h, 100 entries).
func NewAnalysisCache(ttl time.Duration, capacity int) *AnalysisCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &AnalysisCache{
		entries:  make(map[string]cacheEntry),
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
	}
}

// Get returns the cached analysis for hash. An entry past its TTL is
// treated as absent and evicted on the spot.
func (c *AnalysisCache) Get(hash string) (MealAnalysis, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[hash]
	if !ok {
		return MealAnalysis{}, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, hash)
		return MealAnalysis{}, false
	}
	return entry.analysis, true
}

// Set stores an analysis under hash. At capacity, a TTL sweep reclaims
// expired entries before the insert.
func (c *AnalysisCache) Set(hash string, analysis MealAnalysis) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[hash]; !exists && len(c.entries) >= c.capacity {
		removed := c.sweepLocked()
		applog.Debug(context.Background(), "analysis cache sweep", "removed", removed, "size", len(c.entries))
	}

	c.entries[hash] = cacheEntry{analysis: analysis, storedAt: c.now()}
}

// Len reports the current entry count.
func (c *AnalysisCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *AnalysisCache) sweepLocked() int {
	removed := 0
	cutoff := c.now()
	for hash, entry := range c.entries {
		if cutoff.Sub(entry.storedAt) > c.ttl {
			delete(c.entries, hash)
			removed++
		}
	}
	return removed
}
