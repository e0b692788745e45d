package api

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"sort"
	"strconv"
	"time"

	"go-weather/internal/domain/entity"
	"go-weather/internal/domain/model/external"
	"go-weather/pkg/http"
)

const (
	currentWeatherPath = "/data/2.5/weather"
	forecastPath       = "/data/2.5/forecast"
	airPollutionPath   = "/data/2.5/air_pollution"
)

// enrichmentBackoff disables retries for forecast and air quality. Both are optional,
// so a slow provider should not hold the dashboard.
var enrichmentBackoff = &http.BackoffConfig{}

// OpenWeatherConfig holds the query parameters sent with every OpenWeatherMap call
type OpenWeatherConfig struct {
	BaseURL string
	APIKey  string
	Units   string
	Lang    string
}

// weatherGatewayImpl implements the WeatherGateway interface
type weatherGatewayImpl struct {
	httpClient *http.Client
}

// NewWeatherGateway creates a new instance of WeatherGateway with HTTP client
func NewWeatherGateway(config OpenWeatherConfig, clientOptions http.ClientOptions) WeatherGateway {
	clientOptions.Dismiss404 = true
	clientOptions.DefaultHeaders = map[string]string{"Accept": "application/json"}
	clientOptions.DefaultQueryParams = map[string]string{
		"appid": config.APIKey,
		"units": config.Units,
		"lang":  config.Lang,
	}

	return &weatherGatewayImpl{
		httpClient: http.NewHttpClient(config.BaseURL, clientOptions),
	}
}

// LookupCurrentWeather queries the current weather endpoint with q=query
func (w *weatherGatewayImpl) LookupCurrentWeather(ctx context.Context, query string) LookupResult {
	successResp, _, status, err := w.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath(currentWeatherPath).
		WithQueryParams(map[string]string{"q": query}).
		WithSuccessResp(&external.CurrentWeatherResponse{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err != nil {
		return LookupResult{Status: LookupFailed, StatusCode: status, Err: err}
	}

	if status == nethttp.StatusNotFound {
		return LookupResult{Status: LookupNotFound, StatusCode: status}
	}

	response := successResp.(*external.CurrentWeatherResponse)
	return LookupResult{Status: LookupFound, StatusCode: status, Payload: toWeatherPayload(response)}
}

// GetForecast fetches the 5 day / 3 hour forecast and folds it into daily summaries
func (w *weatherGatewayImpl) GetForecast(ctx context.Context, coordinates entity.Coordinates, days int) ([]entity.DailyForecast, error) {
	successResp, errResp, status, err := w.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath(forecastPath).
		WithQueryParams(coordinateParams(coordinates)).
		WithBackoff(enrichmentBackoff).
		WithSuccessResp(&external.ForecastResponse{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err != nil {
		return nil, describeError(errResp, err)
	}
	if status == nethttp.StatusNotFound {
		return nil, errors.New("forecast not found")
	}

	response := successResp.(*external.ForecastResponse)
	return aggregateDaily(response, days), nil
}

// GetAirQuality fetches the current air pollution reading
func (w *weatherGatewayImpl) GetAirQuality(ctx context.Context, coordinates entity.Coordinates) (*entity.AirQuality, error) {
	successResp, errResp, status, err := w.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath(airPollutionPath).
		WithQueryParams(coordinateParams(coordinates)).
		WithBackoff(enrichmentBackoff).
		WithSuccessResp(&external.AirPollutionResponse{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err != nil {
		return nil, describeError(errResp, err)
	}
	if status == nethttp.StatusNotFound {
		return nil, errors.New("air quality not found")
	}

	response := successResp.(*external.AirPollutionResponse)
	if len(response.List) == 0 {
		return nil, errors.New("air quality response has no readings")
	}

	reading := response.List[0]
	return &entity.AirQuality{
		Index:      reading.Main.AQI,
		Components: reading.Components,
		MeasuredAt: time.Unix(reading.Dt, 0).UTC(),
	}, nil
}

func coordinateParams(coordinates entity.Coordinates) map[string]string {
	return map[string]string{
		"lat": strconv.FormatFloat(coordinates.Latitude, 'f', 4, 64),
		"lon": strconv.FormatFloat(coordinates.Longitude, 'f', 4, 64),
	}
}

// describeError prefers the provider's own message over the bare status error
func describeError(errResp any, err error) error {
	if apiErr, ok := errResp.(*external.APIErrorResponse); ok && apiErr.Message != "" {
		return fmt.Errorf("%s: %w", apiErr.Message, err)
	}
	return err
}

// toWeatherPayload converts the API response to the domain payload.
// Label and MatchedQuery are filled in by the resolver.
func toWeatherPayload(response *external.CurrentWeatherResponse) entity.WeatherPayload {
	payload := entity.WeatherPayload{
		ProviderName: response.Name,
		Country:      response.Sys.Country,
		Coordinates: entity.Coordinates{
			Latitude:  response.Coord.Lat,
			Longitude: response.Coord.Lon,
		},
		Current: entity.CurrentConditions{
			Temperature:   response.Main.Temp,
			FeelsLike:     response.Main.FeelsLike,
			TempMin:       response.Main.TempMin,
			TempMax:       response.Main.TempMax,
			Humidity:      response.Main.Humidity,
			Pressure:      response.Main.Pressure,
			WindSpeed:     response.Wind.Speed,
			WindDirection: response.Wind.Deg,
		},
		ObservedAt:     time.Unix(response.Dt, 0).UTC(),
		TimezoneOffset: response.Timezone,
	}

	if len(response.Weather) > 0 {
		payload.Current.Description = response.Weather[0].Description
		payload.Current.Icon = response.Weather[0].Icon
	}

	return payload
}

// aggregateDaily groups 3-hour steps by local calendar day. The description and icon
// come from the step closest to local noon.
func aggregateDaily(response *external.ForecastResponse, days int) []entity.DailyForecast {
	zone := time.FixedZone("", response.City.Timezone)

	type dayBucket struct {
		forecast   entity.DailyForecast
		noonOffset time.Duration
	}

	buckets := make(map[string]*dayBucket)
	var keys []string

	for _, item := range response.List {
		local := time.Unix(item.Dt, 0).In(zone)
		key := local.Format("2006-01-02")
		noon := time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, zone)
		offset := local.Sub(noon).Abs()

		bucket, exists := buckets[key]
		if !exists {
			bucket = &dayBucket{
				forecast: entity.DailyForecast{
					Date:    time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, zone),
					TempMin: item.Main.TempMin,
					TempMax: item.Main.TempMax,
				},
				noonOffset: -1,
			}
			buckets[key] = bucket
			keys = append(keys, key)
		}

		f := &bucket.forecast
		f.TempMin = min(f.TempMin, item.Main.TempMin)
		f.TempMax = max(f.TempMax, item.Main.TempMax)
		f.PrecipProb = max(f.PrecipProb, item.Pop)

		if bucket.noonOffset < 0 || offset < bucket.noonOffset {
			bucket.noonOffset = offset
			f.Humidity = item.Main.Humidity
			f.WindSpeed = item.Wind.Speed
			if len(item.Weather) > 0 {
				f.Description = item.Weather[0].Description
				f.Icon = item.Weather[0].Icon
			}
		}
	}

	sort.Strings(keys)
	if days > 0 && len(keys) > days {
		keys = keys[:days]
	}

	forecasts := make([]entity.DailyForecast, 0, len(keys))
	for _, key := range keys {
		forecasts = append(forecasts, buckets[key].forecast)
	}
	return forecasts
}
