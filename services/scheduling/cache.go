package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ehealth/models"
	"ehealth/utils"

	"github.com/go-redis/redis/v8"
)

// AvailabilityCache is a read-through cache for doctor windows.
type AvailabilityCache interface {
	Get(ctx context.Context, doctorID string) ([]models.AvailabilityWindow, bool, error)
	Set(ctx context.Context, doctorID string, windows []models.AvailabilityWindow) error
	Invalidate(ctx context.Context, doctorID string) error
}

// RedisAvailabilityCache stores windows as JSON under availability:<doctorID>.
type RedisAvailabilityCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisAvailabilityCache(client *redis.Client) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{Client: client, TTL: utils.AvailabilityCacheTTL}
}

func cacheKey(doctorID string) string {
	return utils.AvailabilityCachePrefix + doctorID
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, doctorID string) ([]models.AvailabilityWindow, bool, error) {
	raw, err := c.Client.Get(ctx, cacheKey(doctorID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var windows []models.AvailabilityWindow
	if err := json.Unmarshal(raw, &windows); err != nil {
		return nil, false, err
	}
	if windows == nil {
		windows = []models.AvailabilityWindow{}
	}
	return windows, true, nil
}

func (c *RedisAvailabilityCache) Set(ctx context.Context, doctorID string, windows []models.AvailabilityWindow) error {
	raw, err := json.Marshal(windows)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, cacheKey(doctorID), raw, c.TTL).Err()
}

func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, doctorID string) error {
	return c.Client.Del(ctx, cacheKey(doctorID)).Err()
}
