// Package cache holds Redis-backed read caches in front of the
// relational store. The service layer treats a nil cache as "no cache";
// every lookup falls through to the repository.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// FollowingCache caches the accepted-following ID list per user. Any
// follow mutation invalidates the follower's entry, so a revoked or
// newly accepted edge is reflected by the next feed query.
type FollowingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFollowingCache builds a cache around the given Redis client.
func NewFollowingCache(client *redis.Client, ttl time.Duration) *FollowingCache {
	return &FollowingCache{client: client, ttl: ttl}
}

func (c *FollowingCache) key(userID string) string {
	return fmt.Sprintf("following:accepted:%s", userID)
}

// Get returns the cached accepted-following IDs for userID. The second
// return value is false on a miss or any Redis error; callers then load
// from the repository.
func (c *FollowingCache) Get(ctx context.Context, userID string) ([]string, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		return nil, false
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, false
	}
	return ids, true
}

// Set stores the accepted-following IDs for userID. Failures are logged
// and swallowed; the cache is an optimization, not a source of truth.
func (c *FollowingCache) Set(ctx context.Context, userID string, ids []string) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(userID), payload, c.ttl).Err(); err != nil {
		log.Printf("following cache set failed for %s: %v", userID, err)
	}
}

// Invalidate drops the cached entry for userID.
func (c *FollowingCache) Invalidate(ctx context.Context, userID string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		log.Printf("following cache invalidate failed for %s: %v", userID, err)
	}
}
