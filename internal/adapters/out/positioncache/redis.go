// Package positioncache keeps the latest simulated driver positions in
// Redis for live map polling. Entries expire on their own; the database
// remains the source of truth.
package positioncache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gasexpress/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long a cached position outlives its last update.
// A driver that stops moving simply ages out of the live map.
const DefaultTTL = time.Minute

// RedisPositionCache implements ports.PositionCache on go-redis.
type RedisPositionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// cachedPosition is the stored JSON payload.
type cachedPosition struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewRedisPositionCache creates a cache over an existing Redis client.
// A non-positive ttl falls back to DefaultTTL.
func NewRedisPositionCache(client *redis.Client, ttl time.Duration) *RedisPositionCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &RedisPositionCache{
		client: client,
		ttl:    ttl,
	}
}

// SetPosition records a driver's latest position under its tenant.
func (c *RedisPositionCache) SetPosition(
	ctx context.Context,
	tenantID kernel.TenantID,
	driverID kernel.UUID,
	coordinate kernel.Coordinate,
) error {
	if err := errors.Join(tenantID.Validate(), driverID.Validate(), coordinate.Validate()); err != nil {
		return err
	}

	payload, err := json.Marshal(cachedPosition{
		Lat:       coordinate.Lat(),
		Lng:       coordinate.Lng(),
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return c.client.Set(ctx, positionKey(tenantID, driverID), payload, c.ttl).Err()
}

// GetPosition returns a driver's cached position, or false when the entry
// is missing or expired.
func (c *RedisPositionCache) GetPosition(
	ctx context.Context,
	tenantID kernel.TenantID,
	driverID kernel.UUID,
) (kernel.Coordinate, bool, error) {
	if err := errors.Join(tenantID.Validate(), driverID.Validate()); err != nil {
		return kernel.Coordinate{}, false, err
	}

	payload, err := c.client.Get(ctx, positionKey(tenantID, driverID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return kernel.Coordinate{}, false, nil
		}
		return kernel.Coordinate{}, false, err
	}

	var stored cachedPosition
	if err = json.Unmarshal(payload, &stored); err != nil {
		return kernel.Coordinate{}, false, err
	}

	coordinate, err := kernel.NewCoordinate(stored.Lat, stored.Lng)
	if err != nil {
		return kernel.Coordinate{}, false, err
	}

	return coordinate, true, nil
}

func positionKey(tenantID kernel.TenantID, driverID kernel.UUID) string {
	return fmt.Sprintf("pos:%s:%s", tenantID.String(), driverID.String())
}
