package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go-weather/internal/domain/entity"
	pkghttp "go-weather/pkg/http"
)

const beijingResponse = `{
	"coord": {"lon": 116.3972, "lat": 39.9075},
	"weather": [{"id": 800, "main": "Clear", "description": "晴", "icon": "01d"}],
	"main": {"temp": 21.6, "feels_like": 20.9, "temp_min": 19.9, "temp_max": 22.9, "pressure": 1015, "humidity": 40},
	"wind": {"speed": 3.4, "deg": 315},
	"dt": 1760680800,
	"sys": {"country": "CN"},
	"timezone": 28800,
	"name": "Beijing",
	"cod": 200
}`

func newTestGateway(t *testing.T, handler http.HandlerFunc) WeatherGateway {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewWeatherGateway(OpenWeatherConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Units:   "metric",
		Lang:    "zh_cn",
	}, pkghttp.ClientOptions{ReadTimeout: 5 * time.Second})
}

func TestLookupCurrentWeather_Found(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if r.URL.Path != "/data/2.5/weather" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if query.Get("q") != "北京,中国" {
			t.Errorf("expected q=北京,中国, got %q", query.Get("q"))
		}
		if query.Get("appid") != "test-key" || query.Get("units") != "metric" || query.Get("lang") != "zh_cn" {
			t.Errorf("missing default params: %v", query)
		}
		if accept := r.Header.Get("Accept"); accept != "application/json" {
			t.Errorf("expected Accept application/json, got %q", accept)
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(beijingResponse))
	})

	result := gateway.LookupCurrentWeather(context.Background(), "北京,中国")
	if result.Status != LookupFound {
		t.Fatalf("expected FOUND, got %s (%v)", result.Status, result.Err)
	}

	payload := result.Payload
	if payload.ProviderName != "Beijing" || payload.Country != "CN" {
		t.Errorf("unexpected name/country: %q %q", payload.ProviderName, payload.Country)
	}
	if payload.Coordinates.Latitude != 39.9075 || payload.Coordinates.Longitude != 116.3972 {
		t.Errorf("unexpected coordinates: %+v", payload.Coordinates)
	}
	if payload.Current.Description != "晴" || payload.Current.Icon != "01d" {
		t.Errorf("unexpected description/icon: %+v", payload.Current)
	}
	if payload.Current.Humidity != 40 || payload.Current.Pressure != 1015 || payload.Current.WindDirection != 315 {
		t.Errorf("unexpected conditions: %+v", payload.Current)
	}
	if payload.TimezoneOffset != 28800 {
		t.Errorf("expected timezone 28800, got %d", payload.TimezoneOffset)
	}
	if payload.Label != "" {
		t.Errorf("gateway must not set the label, got %q", payload.Label)
	}
}

func TestLookupCurrentWeather_NotFound(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	})

	result := gateway.LookupCurrentWeather(context.Background(), "Atlantis")
	if result.Status != LookupNotFound {
		t.Fatalf("expected NOT_FOUND, got %s", result.Status)
	}
	if result.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", result.StatusCode)
	}
}

func TestLookupCurrentWeather_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"unauthorized", http.StatusUnauthorized},
		{"rate limited", http.StatusTooManyRequests},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"message":"failure"}`))
			})

			result := gateway.LookupCurrentWeather(context.Background(), "Beijing")
			if result.Status != LookupFailed {
				t.Fatalf("expected FAILED, got %s", result.Status)
			}
			if result.StatusCode != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, result.StatusCode)
			}
			var respErr *pkghttp.ResponseError
			if !errors.As(result.Err, &respErr) {
				t.Errorf("expected ResponseError, got %v", result.Err)
			}
		})
	}
}

func TestLookupCurrentWeather_TransportError(t *testing.T) {
	gateway := NewWeatherGateway(OpenWeatherConfig{BaseURL: "http://127.0.0.1:1"}, pkghttp.ClientOptions{
		ConnectionTimeout: 100 * time.Millisecond,
	})

	result := gateway.LookupCurrentWeather(context.Background(), "Beijing")
	if result.Status != LookupFailed {
		t.Fatalf("expected FAILED, got %s", result.Status)
	}
	if result.StatusCode != 0 {
		t.Errorf("expected status 0, got %d", result.StatusCode)
	}
	if result.Err == nil {
		t.Error("expected transport error")
	}
}

func TestGetForecast_AggregatesByLocalDay(t *testing.T) {
	// Timezone +8h. 1760659200 is 2025-10-17 00:00 UTC, 08:00 local.
	const body = `{
		"city": {"name": "Beijing", "timezone": 28800},
		"list": [
			{"dt": 1760659200, "main": {"temp_min": 12, "temp_max": 14, "humidity": 70}, "weather": [{"description": "多云", "icon": "03d"}], "wind": {"speed": 2}, "pop": 0.1},
			{"dt": 1760670000, "main": {"temp_min": 18, "temp_max": 21, "humidity": 45}, "weather": [{"description": "晴", "icon": "01d"}], "wind": {"speed": 3}, "pop": 0},
			{"dt": 1760680800, "main": {"temp_min": 17, "temp_max": 19, "humidity": 50}, "weather": [{"description": "晴", "icon": "01d"}], "wind": {"speed": 4}, "pop": 0.3},
			{"dt": 1760745600, "main": {"temp_min": 10, "temp_max": 11, "humidity": 80}, "weather": [{"description": "小雨", "icon": "10d"}], "wind": {"speed": 5}, "pop": 0.8},
			{"dt": 1760832000, "main": {"temp_min": 9, "temp_max": 15, "humidity": 60}, "weather": [{"description": "阴", "icon": "04d"}], "wind": {"speed": 1}, "pop": 0.2}
		]
	}`

	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/forecast" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("lat") != "39.9075" || r.URL.Query().Get("lon") != "116.3972" {
			t.Errorf("unexpected coordinates %v", r.URL.Query())
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})

	forecasts, err := gateway.GetForecast(context.Background(), entity.Coordinates{Latitude: 39.9075, Longitude: 116.3972}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forecasts) != 2 {
		t.Fatalf("expected 2 days, got %d", len(forecasts))
	}

	first := forecasts[0]
	if first.Date.Format("2006-01-02") != "2025-10-17" {
		t.Errorf("unexpected first date %s", first.Date)
	}
	if first.TempMin != 12 || first.TempMax != 21 {
		t.Errorf("unexpected min/max %v/%v", first.TempMin, first.TempMax)
	}
	// 11:00 local is the step closest to noon
	if first.Description != "晴" || first.Humidity != 45 || first.WindSpeed != 3 {
		t.Errorf("unexpected noon fields: %+v", first)
	}
	if first.PrecipProb != 0.3 {
		t.Errorf("expected max pop 0.3, got %v", first.PrecipProb)
	}
	if forecasts[1].Description != "小雨" {
		t.Errorf("unexpected second day: %+v", forecasts[1])
	}
}

func TestGetAirQuality(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/air_pollution" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"list":[{"dt":1760680800,"main":{"aqi":3},"components":{"pm2_5":41.2,"pm10":60.1}}]}`))
	})

	aq, err := gateway.GetAirQuality(context.Background(), entity.Coordinates{Latitude: 1, Longitude: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if aq.Index != 3 || aq.Components["pm2_5"] != 41.2 {
		t.Errorf("unexpected air quality %+v", aq)
	}
}

func TestGetAirQuality_ProviderMessage(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	})

	_, err := gateway.GetAirQuality(context.Background(), entity.Coordinates{})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "Invalid API key: http error: status 401" {
		t.Errorf("unexpected error %q", got)
	}
}

func TestEnrichmentCallsAreNotRetried(t *testing.T) {
	var weatherCalls, forecastCalls, airCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case currentWeatherPath:
			atomic.AddInt32(&weatherCalls, 1)
		case forecastPath:
			atomic.AddInt32(&forecastCalls, 1)
		case airPollutionPath:
			atomic.AddInt32(&airCalls, 1)
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	gateway := NewWeatherGateway(OpenWeatherConfig{BaseURL: server.URL}, pkghttp.ClientOptions{
		Backoff: &pkghttp.BackoffConfig{MaxRetries: 2, InitialDelay: time.Millisecond, RetryOn: []int{http.StatusServiceUnavailable}},
	})

	if result := gateway.LookupCurrentWeather(context.Background(), "Beijing"); result.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", result.StatusCode)
	}
	if _, err := gateway.GetForecast(context.Background(), entity.Coordinates{}, 5); err == nil {
		t.Error("expected forecast error")
	}
	if _, err := gateway.GetAirQuality(context.Background(), entity.Coordinates{}); err == nil {
		t.Error("expected air quality error")
	}

	if weatherCalls != 3 {
		t.Errorf("expected current weather retried twice, got %d calls", weatherCalls)
	}
	if forecastCalls != 1 || airCalls != 1 {
		t.Errorf("expected single forecast and air quality calls, got %d and %d", forecastCalls, airCalls)
	}
}
