package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clinicbook/models"

	"github.com/go-redis/redis/v8"
)

// AvailabilityCache is a short-TTL read-through cache for resolved
// weeks. Every key embeds a per-resource generation counter; writes
// bump the generation, orphaning all cached weeks for that resource at
// once. Resolution stays correct without the cache, so every failure
// degrades to a miss.
type AvailabilityCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func (c *AvailabilityCache) generationKey(orgID, resourceID string) string {
	return fmt.Sprintf("avail:gen:%s:%s", orgID, resourceID)
}

func (c *AvailabilityCache) weekKey(ctx context.Context, orgID, resourceID string, weekStart time.Time) string {
	gen, err := c.Client.Get(ctx, c.generationKey(orgID, resourceID)).Int64()
	if err != nil {
		gen = 0
	}
	return fmt.Sprintf("avail:%s:%s:%d:%s", orgID, resourceID, gen, weekStart.Format("2006-01-02"))
}

// Get returns the cached resolved week, or ok=false on any miss or error.
func (c *AvailabilityCache) Get(ctx context.Context, orgID, resourceID string, weekStart time.Time) (map[string][]models.SlotTime, bool) {
	if c == nil || c.Client == nil {
		return nil, false
	}
	payload, err := c.Client.Get(ctx, c.weekKey(ctx, orgID, resourceID, weekStart)).Bytes()
	if err != nil {
		return nil, false
	}
	var days map[string][]models.SlotTime
	if err := json.Unmarshal(payload, &days); err != nil {
		return nil, false
	}
	return days, true
}

// Put stores a resolved week under the resource's current generation.
func (c *AvailabilityCache) Put(ctx context.Context, orgID, resourceID string, weekStart time.Time, days map[string][]models.SlotTime) {
	if c == nil || c.Client == nil {
		return
	}
	payload, err := json.Marshal(days)
	if err != nil {
		return
	}
	c.Client.Set(ctx, c.weekKey(ctx, orgID, resourceID, weekStart), payload, c.TTL)
}

// Invalidate bumps the resource's generation so every cached week for
// it goes stale immediately.
func (c *AvailabilityCache) Invalidate(ctx context.Context, orgID, resourceID string) {
	if c == nil || c.Client == nil {
		return
	}
	key := c.generationKey(orgID, resourceID)
	c.Client.Incr(ctx, key)
	c.Client.Expire(ctx, key, 24*time.Hour)
}

func (s *DefaultService) cacheGet(ctx context.Context, orgID, resourceID string, weekStart time.Time) (map[string][]models.SlotTime, bool) {
	return s.Cache.Get(ctx, orgID, resourceID, weekStart)
}

func (s *DefaultService) cachePut(ctx context.Context, orgID, resourceID string, weekStart time.Time, days map[string][]models.SlotTime) {
	s.Cache.Put(ctx, orgID, resourceID, weekStart, days)
}

func (s *DefaultService) invalidate(ctx context.Context, orgID, resourceID string) {
	s.Cache.Invalidate(ctx, orgID, resourceID)
}
