package serviceimpl

import (
	"context"
	"fmt"
	"time"

	"tps-admin/domain/models"
	"tps-admin/domain/services"
	"tps-admin/pkg/logger"
)

type CityLoaderImpl struct {
	cityAPI services.CityAPI
	cache   services.CityCache
	ttl     time.Duration
}

// NewCityLoader creates the loader forms use on mount. cache may be nil.
func NewCityLoader(cityAPI services.CityAPI, cache services.CityCache, ttl time.Duration) services.CityLoader {
	return &CityLoaderImpl{
		cityAPI: cityAPI,
		cache:   cache,
		ttl:     ttl,
	}
}

// LoadCities returns the cached list when present, otherwise fetches it from
// the TPS API. Cache failures are logged and never fail the load.
func (s *CityLoaderImpl) LoadCities(ctx context.Context) ([]models.City, error) {
	if s.cache != nil {
		cities, ok, err := s.cache.GetCities(ctx)
		if err != nil {
			logger.Warn(logger.CategoryCache, "city_cache_read_failed", "City cache read failed", map[string]interface{}{
				"error": err.Error(),
			})
		} else if ok {
			return cities, nil
		}
	}

	cities, err := s.cityAPI.ListCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cities: %w", err)
	}

	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.SetCities(ctx, cities, s.ttl); err != nil {
			logger.Warn(logger.CategoryCache, "city_cache_write_failed", "City cache write failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return cities, nil
}
