package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tps-admin/domain/models"
	"tps-admin/domain/services"
)

const citiesKey = "tps:cities"

// CityCache keeps the city reference list as one JSON value.
type CityCache struct {
	client *RedisClient
}

var _ services.CityCache = (*CityCache)(nil)

func NewCityCache(client *RedisClient) *CityCache {
	return &CityCache{client: client}
}

// GetCities reports ok=false when nothing is cached.
func (c *CityCache) GetCities(ctx context.Context) ([]models.City, bool, error) {
	raw, err := c.client.client.Get(ctx, citiesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cities: %w", err)
	}

	var cities []models.City
	if err := json.Unmarshal(raw, &cities); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached cities: %w", err)
	}
	return cities, true, nil
}

func (c *CityCache) SetCities(ctx context.Context, cities []models.City, ttl time.Duration) error {
	raw, err := json.Marshal(cities)
	if err != nil {
		return fmt.Errorf("failed to encode cities: %w", err)
	}
	if err := c.client.client.Set(ctx, citiesKey, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cities: %w", err)
	}
	return nil
}
