package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// EstimateCacheTTL bounds how long a fare estimate stays valid.
const EstimateCacheTTL = 15 * time.Minute

const estimateCachePrefix = "cache:estimate:"

// CachedEstimate is one provider quote stored in the estimate cache.
type CachedEstimate struct {
	Service     string  `json:"service"`
	Estimate    string  `json:"estimate"`
	Low         float64 `json:"low"`
	High        float64 `json:"high"`
	Currency    string  `json:"currency"`
	DurationMin float64 `json:"duration_min"`
	DistanceKm  float64 `json:"distance_km"`
}

// EstimateCache caches fare estimates in Redis, keyed by rounded route
// coordinates so nearby requests share an entry.
type EstimateCache struct {
	client *redis.Client
}

// NewEstimateCache creates a new EstimateCache.
func NewEstimateCache(client *redis.Client) *EstimateCache {
	return &EstimateCache{client: client}
}

// EstimateKey builds the cache key for a route. Coordinates are rounded to
// four decimal places (roughly 11 metres).
func EstimateKey(startLat, startLng, endLat, endLng float64) string {
	return fmt.Sprintf("%.4f,%.4f|%.4f,%.4f", startLat, startLng, endLat, endLng)
}

// Get retrieves cached estimates for a route. Returns nil on a miss.
func (c *EstimateCache) Get(ctx context.Context, key string) ([]CachedEstimate, error) {
	data, err := c.client.Get(ctx, estimateCachePrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var estimates []CachedEstimate
	if err := json.Unmarshal(data, &estimates); err != nil {
		return nil, err
	}
	return estimates, nil
}

// Set stores estimates for a route with the standard TTL.
func (c *EstimateCache) Set(ctx context.Context, key string, estimates []CachedEstimate) error {
	data, err := json.Marshal(estimates)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, estimateCachePrefix+key, data, EstimateCacheTTL).Err()
}
