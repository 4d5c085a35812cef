package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"travelcms/models"
	"travelcms/services/logger"
)

const listCacheTTL = 10 * time.Minute

// ListPage is what the list cache stores for one query.
type ListPage[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

// ListCache stores list pages per kind. Every write to a kind bumps its
// version so older pages are never read again; entries are invalidated, never
// patched. A nil client turns the cache into a pass-through.
type ListCache struct {
	rdb    *redis.Client
	prefix string
	logger logger.Logger
}

func NewListCache(rdb *redis.Client, log logger.Logger) *ListCache {
	return &ListCache{rdb: rdb, prefix: "travelcms", logger: log}
}

func (c *ListCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *ListCache) versionKey(kind models.Kind) string {
	return fmt.Sprintf("%s:%s:version", c.prefix, kind)
}

func (c *ListCache) version(ctx context.Context, kind models.Kind) (int64, error) {
	v, err := c.rdb.Get(ctx, c.versionKey(kind)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}

func (c *ListCache) key(ctx context.Context, kind models.Kind, query string) (string, error) {
	v, err := c.version(ctx, kind)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s:v%d:list:%s", c.prefix, kind, v, query), nil
}

// Get loads the cached page for query into target. Redis failures count as a miss.
func (c *ListCache) Get(ctx context.Context, kind models.Kind, query string, target interface{}) bool {
	if !c.Enabled() {
		return false
	}
	key, err := c.key(ctx, kind, query)
	if err != nil {
		c.logger.Error("list cache version %s: %v", kind, err)
		return false
	}
	hit, err := GetFromRedis(ctx, c.rdb, key, target)
	if err != nil {
		c.logger.Error("list cache get %s: %v", key, err)
		return false
	}
	return hit
}

func (c *ListCache) Set(ctx context.Context, kind models.Kind, query string, value interface{}) {
	if !c.Enabled() {
		return
	}
	key, err := c.key(ctx, kind, query)
	if err != nil {
		c.logger.Error("list cache version %s: %v", kind, err)
		return
	}
	if err := SetToRedis(ctx, c.rdb, key, value, listCacheTTL); err != nil {
		c.logger.Error("list cache set %s: %v", key, err)
	}
}

// Invalidate bumps the kind's version.
func (c *ListCache) Invalidate(ctx context.Context, kind models.Kind) {
	if !c.Enabled() {
		return
	}
	if err := c.rdb.Incr(ctx, c.versionKey(kind)).Err(); err != nil {
		c.logger.Error("list cache invalidate %s: %v", kind, err)
		if err := DeleteFromRedis(ctx, c.rdb, c.versionKey(kind)); err != nil {
			c.logger.Error("list cache reset %s: %v", kind, err)
		}
	}
}
