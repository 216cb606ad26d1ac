package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srivastan1999/elfsod-2-sub000/internal/repository"
)

// CategoryCache caches the parent->children ID expansion the listing filter
// performs on every categorized request. Entries expire on a TTL and are
// invalidated whenever a category is written.
type CategoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCategoryCache(client *redis.Client, ttl time.Duration) *CategoryCache {
	return &CategoryCache{client: client, ttl: ttl}
}

func childrenKey(parentID int) string {
	return fmt.Sprintf("categories:children:%d", parentID)
}

func (c *CategoryCache) GetChildren(ctx context.Context, parentID int) ([]int, error) {
	data, err := c.client.Get(ctx, childrenKey(parentID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrCacheMiss
		}
		return nil, fmt.Errorf("CategoryCache.GetChildren: %w", err)
	}

	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		// Corrupt entry, treat as a miss so it gets rewritten.
		return nil, repository.ErrCacheMiss
	}
	return ids, nil
}

func (c *CategoryCache) SetChildren(ctx context.Context, parentID int, childIDs []int) error {
	if childIDs == nil {
		childIDs = []int{}
	}
	data, err := json.Marshal(childIDs)
	if err != nil {
		return fmt.Errorf("CategoryCache.SetChildren: %w", err)
	}
	if err := c.client.Set(ctx, childrenKey(parentID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("CategoryCache.SetChildren: %w", err)
	}
	return nil
}

func (c *CategoryCache) Invalidate(ctx context.Context, parentID int) error {
	if err := c.client.Del(ctx, childrenKey(parentID)).Err(); err != nil {
		return fmt.Errorf("CategoryCache.Invalidate: %w", err)
	}
	return nil
}
