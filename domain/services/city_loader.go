package services

import (
	"context"
	"time"

	"tps-admin/domain/models"
)

// CityLoader provides the selectable cities for a form session.
type CityLoader interface {
	LoadCities(ctx context.Context) ([]models.City, error)
}

// CityCache stores the city list between form sessions.
type CityCache interface {
	GetCities(ctx context.Context) ([]models.City, bool, error)
	SetCities(ctx context.Context, cities []models.City, ttl time.Duration) error
}
