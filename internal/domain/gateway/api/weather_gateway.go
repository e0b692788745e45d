package api

import (
	"context"

	"go-weather/internal/domain/entity"
)

// LookupStatus classifies a single current-weather lookup.
type LookupStatus int

const (
	LookupFound LookupStatus = iota
	LookupNotFound
	LookupFailed
)

func (s LookupStatus) String() string {
	switch s {
	case LookupFound:
		return "FOUND"
	case LookupNotFound:
		return "NOT_FOUND"
	default:
		return "FAILED"
	}
}

// LookupResult is the outcome of one provider lookup.
// Payload is set only for LookupFound; StatusCode and Err only for LookupFailed.
// StatusCode is 0 when the request never got an HTTP answer.
type LookupResult struct {
	Status     LookupStatus
	Payload    entity.WeatherPayload
	StatusCode int
	Err        error
}

// WeatherGateway defines the interface for weather-related external API calls
type WeatherGateway interface {
	// LookupCurrentWeather resolves a single query string to current conditions.
	LookupCurrentWeather(ctx context.Context, query string) LookupResult

	// GetForecast returns up to days daily summaries for the coordinates.
	GetForecast(ctx context.Context, coordinates entity.Coordinates, days int) ([]entity.DailyForecast, error)

	// GetAirQuality returns the current air pollution reading for the coordinates.
	GetAirQuality(ctx context.Context, coordinates entity.Coordinates) (*entity.AirQuality, error)
}
