package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cooldowns tracks per-user vote cooldowns as redis keys with a TTL.
// The key either exists (cooldown active, TTL = time remaining) or it
// does not, so expiry needs no sweeping.
type Cooldowns struct {
	client *redis.Client
}

func NewCooldowns(client *redis.Client) *Cooldowns {
	return &Cooldowns{client: client}
}

func cooldownKey(userID, siteID string) string {
	return fmt.Sprintf("vote:cooldown:%s:%s", userID, siteID)
}

// Acquire claims the cooldown slot for userID on siteID. It returns
// false with the remaining wait when the slot is already held.
func (c *Cooldowns) Acquire(ctx context.Context, userID, siteID string, ttl time.Duration) (bool, time.Duration, error) {
	key := cooldownKey(userID, siteID)

	ok, err := c.client.SetNX(ctx, key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, 0, fmt.Errorf("setnx %s: %w", key, err)
	}
	if ok {
		return true, 0, nil
	}

	remaining, err := c.client.TTL(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("ttl %s: %w", key, err)
	}
	if remaining < 0 {
		remaining = 0
	}
	return false, remaining, nil
}

// Remaining reports the time left on a cooldown, zero if none is
// active.
func (c *Cooldowns) Remaining(ctx context.Context, userID, siteID string) (time.Duration, error) {
	remaining, err := c.client.TTL(ctx, cooldownKey(userID, siteID)).Result()
	if err != nil {
		return 0, err
	}
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}
