// Package cache fronts the derived aggregate-rating computation with a
// short-TTL redis cache so catalog listings don't re-aggregate reviews on
// every page render. The cache is optional: with no redis configured every
// lookup is a miss and the store is queried directly.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/SreekarSamrudh/e-shop-central/internal/metrics"
)

// DefaultTTL bounds how stale a listed rating may be.
const DefaultTTL = 5 * time.Minute

// RatingSummary is the cached derived value: mean rating plus review count.
type RatingSummary struct {
	Avg   float64 `json:"avg"`
	Count int     `json:"count"`
}

// RatingCache caches per-product rating summaries.
type RatingCache struct {
	client  *redis.Client
	metrics *metrics.AppMetrics
	ttl     time.Duration
}

// NewRatingCache connects to redis at addr. An empty addr disables the
// cache; Get then always misses and Set/Invalidate are no-ops.
func NewRatingCache(addr string, m *metrics.AppMetrics) *RatingCache {
	rc := &RatingCache{metrics: m, ttl: DefaultTTL}
	if addr != "" {
		rc.client = redis.NewClient(&redis.Options{Addr: addr})
	}
	return rc
}

// Enabled reports whether a redis backend is configured.
func (c *RatingCache) Enabled() bool {
	return c.client != nil
}

// Key returns the cache key for one product's rating summary.
func Key(productID int64) string {
	return fmt.Sprintf("rating:product:%d", productID)
}

// Get returns the cached summary for a product, or ok=false on a miss.
func (c *RatingCache) Get(ctx context.Context, productID int64) (RatingSummary, bool) {
	if c.client == nil {
		c.miss(ctx, productID)
		return RatingSummary{}, false
	}

	val, err := c.client.Get(ctx, Key(productID)).Result()
	if err != nil {
		c.miss(ctx, productID)
		return RatingSummary{}, false
	}

	var summary RatingSummary
	if err := json.Unmarshal([]byte(val), &summary); err != nil {
		c.miss(ctx, productID)
		return RatingSummary{}, false
	}

	c.hit(ctx, productID)
	return summary, true
}

// Set stores a product's rating summary for the cache TTL. Failures are
// swallowed: the cache is an optimization, not a source of truth.
func (c *RatingCache) Set(ctx context.Context, productID int64, summary RatingSummary) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return
	}
	c.client.Set(ctx, Key(productID), data, c.ttl)
}

// Invalidate drops a product's cached summary. Called when a review lands.
func (c *RatingCache) Invalidate(ctx context.Context, productID int64) {
	if c.client == nil {
		return
	}
	c.client.Del(ctx, Key(productID))
}

// Close releases the redis connection.
func (c *RatingCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *RatingCache) hit(ctx context.Context, productID int64) {
	if c.metrics == nil {
		return
	}
	attrs := c.metrics.WithServiceName([]attribute.KeyValue{attribute.Int64("product_id", productID)})
	c.metrics.CacheHits.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (c *RatingCache) miss(ctx context.Context, productID int64) {
	if c.metrics == nil {
		return
	}
	attrs := c.metrics.WithServiceName([]attribute.KeyValue{attribute.Int64("product_id", productID)})
	c.metrics.CacheMisses.Add(ctx, 1, metric.WithAttributes(attrs...))
}
