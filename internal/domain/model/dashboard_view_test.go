package model

import (
	"testing"
	"time"

	"go-weather/internal/domain/entity"
)

const iconTemplate = "https://openweathermap.org/img/wn/%s@2x.png"

func TestWindDirectionLabel(t *testing.T) {
	tests := []struct {
		degrees float64
		want    string
	}{
		{0, "北风"},
		{22.4, "北风"},
		{22.5, "东北风"},
		{90, "东风"},
		{135, "东南风"},
		{180, "南风"},
		{225, "西南风"},
		{270, "西风"},
		{315, "西北风"},
		{340, "北风"},
		{360, "北风"},
	}

	for _, tt := range tests {
		if got := WindDirectionLabel(tt.degrees); got != tt.want {
			t.Errorf("WindDirectionLabel(%v) = %q, want %q", tt.degrees, got, tt.want)
		}
	}
}

func TestFormatTemperature(t *testing.T) {
	tests := map[float64]string{
		21.6: "22°C",
		21.5: "22°C",
		21.4: "21°C",
		-0.4: "0°C",
		-2.5: "-2°C",
		-2.6: "-3°C",
	}
	for celsius, want := range tests {
		if got := FormatTemperature(celsius); got != want {
			t.Errorf("FormatTemperature(%v) = %q, want %q", celsius, got, want)
		}
	}
}

func TestDateLabel(t *testing.T) {
	date := time.Date(2025, 10, 17, 8, 0, 0, 0, time.UTC)
	if got := DateLabel(date); got != "2025年10月17日星期五" {
		t.Errorf("unexpected label %q", got)
	}
}

func TestAirQualityLevel(t *testing.T) {
	if got := AirQualityLevel(1); got != "优" {
		t.Errorf("expected 优, got %q", got)
	}
	if got := AirQualityLevel(5); got != "重度污染" {
		t.Errorf("expected 重度污染, got %q", got)
	}
	if got := AirQualityLevel(0); got != "未知" {
		t.Errorf("expected 未知, got %q", got)
	}
}

func TestNewDashboardView(t *testing.T) {
	// 2025-10-16 23:00 UTC is already the 17th in Beijing
	observed := time.Date(2025, 10, 16, 23, 0, 0, 0, time.UTC)
	dashboard := &entity.Dashboard{
		Weather: entity.WeatherPayload{
			Label:        "北京",
			ProviderName: "Beijing",
			Country:      "CN",
			MatchedQuery: "Beijing",
			Current: entity.CurrentConditions{
				Temperature:   21.6,
				FeelsLike:     20.9,
				TempMin:       19.9,
				TempMax:       22.9,
				Description:   "晴",
				Icon:          "01d",
				Humidity:      40,
				Pressure:      1015,
				WindSpeed:     3.4,
				WindDirection: 315,
			},
			ObservedAt:     observed,
			TimezoneOffset: 8 * 3600,
		},
		Forecast: []entity.DailyForecast{{
			Date:        time.Date(2025, 10, 18, 0, 0, 0, 0, time.FixedZone("", 8*3600)),
			TempMin:     10.2,
			TempMax:     15.7,
			Description: "小雨",
			Icon:        "10d",
			PrecipProb:  0.8,
		}},
		AirQuality: &entity.AirQuality{Index: 3, Components: map[string]float64{"pm2_5": 41.2}},
	}

	view := NewDashboardView(dashboard, iconTemplate)

	if view.City != "北京" || view.ProviderName != "Beijing" {
		t.Errorf("city label must be the user input, got %q / %q", view.City, view.ProviderName)
	}
	if view.Date != "2025年10月17日星期五" {
		t.Errorf("expected local date, got %q", view.Date)
	}
	if view.Temperature != "22°C" || view.FeelsLike != "21°C" || view.TempMin != "20°C" || view.TempMax != "23°C" {
		t.Errorf("unexpected temperatures %+v", view)
	}
	if view.Wind != "西北风 3 m/s" {
		t.Errorf("unexpected wind %q", view.Wind)
	}
	if view.Humidity != "40%" || view.Pressure != "1015 hPa" {
		t.Errorf("unexpected humidity/pressure %q %q", view.Humidity, view.Pressure)
	}
	if view.IconURL != "https://openweathermap.org/img/wn/01d@2x.png" {
		t.Errorf("unexpected icon url %q", view.IconURL)
	}

	if len(view.Forecast) != 1 {
		t.Fatalf("expected one forecast day, got %d", len(view.Forecast))
	}
	day := view.Forecast[0]
	if day.Date != "10月18日" || day.Weekday != "星期六" || day.TempMin != "10°C" || day.TempMax != "16°C" || day.PrecipProbability != "80%" {
		t.Errorf("unexpected forecast day %+v", day)
	}

	if view.AirQuality == nil || view.AirQuality.Level != "轻度污染" {
		t.Errorf("unexpected air quality %+v", view.AirQuality)
	}
}

func TestNewDashboardViewWithoutOptionalSections(t *testing.T) {
	view := NewDashboardView(&entity.Dashboard{Weather: entity.WeatherPayload{Label: "London"}}, iconTemplate)

	if view.Forecast == nil || len(view.Forecast) != 0 {
		t.Errorf("expected an empty forecast list, got %v", view.Forecast)
	}
	if view.AirQuality != nil {
		t.Errorf("expected no air quality, got %+v", view.AirQuality)
	}
	if view.IconURL != "" {
		t.Errorf("expected no icon url without icon, got %q", view.IconURL)
	}
}
