package roster

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"ms-checkin/internal/models"
)

// RosterKey is the Redis key holding the cached roster snapshot.
const RosterKey = "roster_snapshot"

// Cache holds a short-lived JSON snapshot of the roster in Redis. The
// TTL bounds staleness; ledger reads are never cached.
type Cache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{Client: client, TTL: ttl}
}

// Get returns the cached roster, or false on miss, expiry, or any
// Redis failure. A broken cache only costs a database read.
func (c *Cache) Get(ctx context.Context) ([]models.Attendee, bool) {
	if c == nil || c.Client == nil {
		return nil, false
	}

	raw, err := c.Client.Get(ctx, RosterKey).Result()
	if err != nil {
		return nil, false
	}

	var roster []models.Attendee
	if err := json.Unmarshal([]byte(raw), &roster); err != nil {
		return nil, false
	}
	return roster, true
}

// Set stores a roster snapshot with the configured TTL.
func (c *Cache) Set(ctx context.Context, roster []models.Attendee) error {
	if c == nil || c.Client == nil {
		return nil
	}

	raw, err := json.Marshal(roster)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, RosterKey, raw, c.TTL).Err()
}

// Invalidate drops the cached snapshot.
func (c *Cache) Invalidate(ctx context.Context) error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Del(ctx, RosterKey).Err()
}
