// Package cache is a read-through Redis cache for single-product reads.
// A nil *ProductCache or nil client disables caching entirely, so the
// handlers never have to branch on configuration.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jkwan/gomall/internal/product"
)

type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProductCache(rdb *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{rdb: rdb, ttl: ttl}
}

func key(id int64) string { return fmt.Sprintf("product:%d", id) }

func (c *ProductCache) enabled() bool { return c != nil && c.rdb != nil }

func (c *ProductCache) Get(ctx context.Context, id int64) (*product.Product, bool) {
	if !c.enabled() {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key(id)).Result()
	if err != nil {
		return nil, false
	}
	var p product.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, false
	}
	return &p, true
}

func (c *ProductCache) Set(ctx context.Context, p *product.Product) {
	if !c.enabled() || p == nil {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key(p.ProductID), raw, c.ttl).Err(); err != nil {
		log.Printf("[cache] set product %d: %v", p.ProductID, err)
	}
}

// Invalidate drops cached entries after catalog writes or a committed
// checkout changed their stock.
func (c *ProductCache) Invalidate(ctx context.Context, ids ...int64) {
	if !c.enabled() || len(ids) == 0 {
		return
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = key(id)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[cache] invalidate %v: %v", ids, err)
	}
}
