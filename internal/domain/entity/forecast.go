package entity

import "time"

// DailyForecast summarises one calendar day of the provider's 3-hourly forecast.
type DailyForecast struct {
	Date        time.Time `json:"date"`
	TempMin     float64   `json:"tempMin"`
	TempMax     float64   `json:"tempMax"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Humidity    int       `json:"humidity"`
	WindSpeed   float64   `json:"windSpeed"`
	PrecipProb  float64   `json:"precipProbability"`
}

// AirQuality is the provider's current air pollution reading.
// Index follows the OpenWeatherMap 1 (good) to 5 (very poor) scale.
type AirQuality struct {
	Index      int                `json:"index"`
	Components map[string]float64 `json:"components"`
	MeasuredAt time.Time          `json:"measuredAt"`
}
